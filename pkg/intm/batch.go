package intm

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Job is one source package and its destination
type Job struct {
	Source      string `yaml:"source" validate:"required"`
	Destination string `yaml:"destination" validate:"required"`
}

// Manifest lists conversions to run together
type Manifest struct {
	// Concurrency bounds parallel jobs. 0 uses the converter config.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`
	// ContinueOnError runs every job and reports all failures instead of
	// stopping at the first one
	ContinueOnError bool  `yaml:"continue_on_error"`
	Jobs            []Job `yaml:"jobs" validate:"required,min=1,dive"`
}

// LoadManifest reads and validates a YAML batch manifest
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for missing fields
func (m *Manifest) Validate() error {
	return validateStruct(m)
}

// JobResult is the outcome of one job
type JobResult struct {
	Job
	Result  *Result
	Err     error
	Skipped bool
}

// BatchReport summarizes a batch run
type BatchReport struct {
	Results      []JobResult
	Succeeded    int
	Failed       int
	Skipped      int
	BytesWritten int64
	Duration     time.Duration
}

// RunBatch converts every job in m. Each job gets its own conversion state;
// nothing is shared between jobs but the read-only engine.
//
// Without ContinueOnError the first failure stops jobs that have not started
// yet and is returned. With it, all failures are returned as a MultiError.
func (c *Converter) RunBatch(ctx context.Context, m *Manifest) (*BatchReport, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	limit := m.Concurrency
	if limit <= 0 {
		limit = c.config.Concurrency
	}

	var (
		started   = time.Now()
		results   = make([]JobResult, len(m.Jobs))
		succeeded = atomic.NewInt64(0)
		failed    = atomic.NewInt64(0)
		skipped   = atomic.NewInt64(0)
		written   = atomic.NewInt64(0)
	)

	c.logger.Info("Starting batch of %d jobs with concurrency %d", len(m.Jobs), limit)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range m.Jobs {
		g.Go(func() error {
			results[i].Job = job
			if gctx.Err() != nil {
				results[i].Skipped = true
				skipped.Inc()
				return nil
			}

			res, err := c.ConvertFile(gctx, job.Source, job.Destination)
			if err != nil {
				results[i].Err = err
				failed.Inc()
				if m.ContinueOnError {
					return nil
				}
				return fmt.Errorf("job %d (%s): %w", i+1, job.Source, err)
			}

			results[i].Result = res
			succeeded.Inc()
			written.Add(res.BytesWritten)
			return nil
		})
	}
	err := g.Wait()

	report := &BatchReport{
		Results:      results,
		Succeeded:    int(succeeded.Load()),
		Failed:       int(failed.Load()),
		Skipped:      int(skipped.Load()),
		BytesWritten: written.Load(),
		Duration:     time.Since(started),
	}

	if m.ContinueOnError {
		errs := NewMultiError()
		for i, r := range results {
			if r.Err != nil {
				errs.Add(fmt.Errorf("job %d (%s): %w", i+1, r.Source, r.Err))
			}
		}
		err = errs.Err()
	}
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	c.logger.Info("Batch finished: %d succeeded, %d failed, %d skipped in %s",
		report.Succeeded, report.Failed, report.Skipped, report.Duration)

	return report, err
}
