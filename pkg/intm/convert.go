package intm

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/benjaminschreck/docx2intm/pkg/intm/xml"
)

// Result describes a finished file conversion
type Result struct {
	Source      string
	Destination string
	Stats
}

// Converter turns .docx packages into intermediate markup files
type Converter struct {
	config  *Config
	engine  *Engine
	logger  *Logger
	objects ObjectAPI
}

// ConverterOption configures a Converter
type ConverterOption func(*Converter)

// WithObjectAPI enables s3:// sources
func WithObjectAPI(api ObjectAPI) ConverterOption {
	return func(c *Converter) {
		c.objects = api
	}
}

// WithLogger sets the logger for the converter and its engine
func WithLogger(l *Logger) ConverterOption {
	return func(c *Converter) {
		c.logger = l
	}
}

// NewConverter validates cfg and builds a converter. A nil cfg uses
// DefaultConfig.
func NewConverter(cfg *Config, opts ...ConverterOption) (*Converter, error) {
	cfg = NewConfigWithDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Converter{config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = GetLogger()
	}
	c.engine = NewEngine(
		WithIgnoredStyles(cfg.IgnoredStyles...),
		WithEngineLogger(c.logger),
	)
	return c, nil
}

// Config returns a copy of the converter configuration
func (c *Converter) Config() Config {
	cfg := *c.config
	cfg.IgnoredStyles = append([]string(nil), c.config.IgnoredStyles...)
	return cfg
}

// Engine returns the engine shared by all conversions of this converter
func (c *Converter) Engine() *Engine {
	return c.engine
}

func (c *Converter) archiveOptions() []ArchiveOption {
	return []ArchiveOption{
		WithDocumentPart(c.config.DocumentPart),
		WithMaxPackageSize(c.config.MaxPackageSize),
	}
}

// Open opens a package from a local path or an s3://bucket/key URI
func (c *Converter) Open(ctx context.Context, src string) (*Archive, error) {
	if bucket, key, ok := ParseS3URI(src); ok {
		if c.objects == nil {
			return nil, NewArchiveAccessError(src, "no S3 client configured", nil)
		}
		return OpenS3Archive(ctx, c.objects, bucket, key, c.archiveOptions()...)
	}
	return OpenArchive(src, c.archiveOptions()...)
}

// ConvertFile converts the package at src into the file dst. The package and
// the destination are released on every exit path. A failed conversion may
// leave a partial dst behind.
func (c *Converter) ConvertFile(ctx context.Context, src, dst string) (res *Result, err error) {
	logger := c.logger.WithFields(Fields{"source": src, "destination": dst})

	archive, err := c.Open(ctx, src)
	if err != nil {
		logger.Error("Failed to open package: %v", err)
		return nil, err
	}
	defer func() {
		if cerr := archive.Close(); cerr != nil && err == nil {
			err = NewArchiveAccessError(src, "failed to close package", cerr)
		}
	}()

	part, err := archive.OpenMainPart()
	if err != nil {
		logger.Error("Failed to open document part: %v", err)
		return nil, err
	}

	out, err := os.Create(dst)
	if err != nil {
		err = &OutputError{Operation: "create", Path: dst, Cause: err}
		logger.Error("%v", err)
		return nil, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &OutputError{Operation: "close", Path: dst, Cause: cerr}
		}
	}()

	stats, err := c.engine.Convert(xml.NewDecoderSource(part), out)
	if err != nil {
		err = withPaths(err, src, dst)
		logger.Error("Conversion failed after %d bytes: %v", stats.BytesWritten, err)
		return nil, err
	}

	logger.WithField("conversion", stats.ID).Info(
		"Converted %d paragraphs, %d tables, %d cells (%d bytes) in %s",
		stats.Paragraphs, stats.Tables, stats.Cells, stats.BytesWritten, stats.Duration)

	return &Result{Source: src, Destination: dst, Stats: *stats}, nil
}

// withPaths fills in the source or destination on errors raised by the
// engine, which does not know them
func withPaths(err error, src, dst string) error {
	var oe *OutputError
	if errors.As(err, &oe) && oe.Path == "" {
		oe.Path = dst
	}
	var ae *ArchiveAccessError
	if errors.As(err, &ae) && ae.Path == "" {
		ae.Path = src
	}
	return err
}

// ConvertArchive converts the document part of an open package into w
func (c *Converter) ConvertArchive(a *Archive, w io.Writer) (*Stats, error) {
	part, err := a.OpenMainPart()
	if err != nil {
		return nil, err
	}
	return c.engine.Convert(xml.NewDecoderSource(part), w)
}

// ConvertReader converts a document part read from r into w
func (c *Converter) ConvertReader(r io.Reader, w io.Writer) (*Stats, error) {
	return c.engine.Convert(xml.NewDecoderSource(r), w)
}

// ConvertFile converts src into dst using DefaultConfig
func ConvertFile(src, dst string) (*Result, error) {
	c, err := NewConverter(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return c.ConvertFile(context.Background(), src, dst)
}
