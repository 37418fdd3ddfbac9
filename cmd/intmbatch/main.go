package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/benjaminschreck/docx2intm/pkg/intm"
)

const usage = `Usage: intmbatch <manifest.yaml>

Converts every job listed in the manifest. Configuration is read from
INTM_CONFIG and INTM_* environment variables.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	manifest, err := intm.LoadManifest(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "intmbatch: %v\n", err)
		return 1
	}

	cfg, err := intm.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "intmbatch: %v\n", err)
		return 1
	}
	intm.UpdateLoggerFromConfig(cfg)

	var opts []intm.ConverterOption
	if needsS3(manifest) {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "intmbatch: failed to load AWS config: %v\n", err)
			return 1
		}
		opts = append(opts, intm.WithObjectAPI(s3.NewFromConfig(awsCfg)))
	}

	conv, err := intm.NewConverter(cfg, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "intmbatch: %v\n", err)
		return 1
	}

	report, err := conv.RunBatch(ctx, manifest)
	if report != nil {
		for _, r := range report.Results {
			switch {
			case r.Skipped:
				fmt.Fprintf(stdout, "SKIP %s\n", r.Source)
			case r.Err != nil:
				fmt.Fprintf(stdout, "FAIL %s: %v\n", r.Source, r.Err)
			default:
				fmt.Fprintf(stdout, "OK   %s -> %s (%d bytes)\n", r.Source, r.Destination, r.Result.BytesWritten)
			}
		}
		fmt.Fprintf(stdout, "%d succeeded, %d failed, %d skipped\n", report.Succeeded, report.Failed, report.Skipped)
	}
	if err != nil {
		fmt.Fprintf(stderr, "intmbatch: %v\n", err)
		return 1
	}
	return 0
}

func needsS3(m *intm.Manifest) bool {
	for _, job := range m.Jobs {
		if intm.IsS3URI(job.Source) {
			return true
		}
	}
	return false
}
