package main

import (
	"context"
	"fmt"
	"io"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/benjaminschreck/docx2intm/pkg/intm"
)

const usage = `Usage: docx2intm <source.docx> <destination>

The source may be a local path or s3://bucket/key.
Configuration is read from INTM_CONFIG and INTM_* environment variables.
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	src, dst := args[0], args[1]

	cfg, err := intm.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "docx2intm: %v\n", err)
		return 1
	}
	intm.UpdateLoggerFromConfig(cfg)

	var opts []intm.ConverterOption
	if intm.IsS3URI(src) {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "docx2intm: failed to load AWS config: %v\n", err)
			return 1
		}
		opts = append(opts, intm.WithObjectAPI(s3.NewFromConfig(awsCfg)))
	}

	conv, err := intm.NewConverter(cfg, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "docx2intm: %v\n", err)
		return 1
	}
	if _, err := conv.ConvertFile(ctx, src, dst); err != nil {
		fmt.Fprintf(stderr, "docx2intm: %v\n", err)
		return 1
	}
	return 0
}
