package intm

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how much of the package head is inspected before the zip
// directory is parsed.
const sniffLen = 3072

// Archive gives access to the document part of a .docx package
type Archive struct {
	name   string
	part   string
	parts  map[string]*zip.File
	closer io.Closer

	mu     sync.Mutex
	stream *partStream
	closed bool
}

type archiveOptions struct {
	part    string
	maxSize int64
}

// ArchiveOption configures how a package is opened
type ArchiveOption func(*archiveOptions)

// WithDocumentPart selects the package member to convert
func WithDocumentPart(name string) ArchiveOption {
	return func(o *archiveOptions) {
		o.part = name
	}
}

// WithMaxPackageSize rejects packages larger than n bytes. 0 disables the check.
func WithMaxPackageSize(n int64) ArchiveOption {
	return func(o *archiveOptions) {
		o.maxSize = n
	}
}

func applyArchiveOptions(opts []ArchiveOption) archiveOptions {
	o := archiveOptions{part: DefaultDocumentPart}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// OpenArchive opens a package from the local filesystem. The file stays
// open until Close.
func OpenArchive(path string, opts ...ArchiveOption) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewArchiveAccessError(path, "failed to open package", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, NewArchiveAccessError(path, "failed to stat package", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, NewArchiveAccessError(path, "package is a directory", nil)
	}

	a, err := NewArchive(f, info.Size(), path, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// NewArchive reads the zip directory of a package held by r. The caller
// keeps ownership of r.
func NewArchive(r io.ReaderAt, size int64, name string, opts ...ArchiveOption) (*Archive, error) {
	o := applyArchiveOptions(opts)

	if o.maxSize > 0 && size > o.maxSize {
		return nil, NewArchiveAccessError(name,
			fmt.Sprintf("package too large: %d bytes (max %d)", size, o.maxSize), nil)
	}

	head := make([]byte, min(size, sniffLen))
	n, err := r.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, NewArchiveAccessError(name, "failed to read package header", err)
	}
	if detected := mimetype.Detect(head[:n]); !isZip(detected) {
		return nil, NewArchiveAccessError(name,
			fmt.Sprintf("not a zip package (detected %s)", detected.String()), nil)
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewArchiveAccessError(name, "failed to read zip directory", err)
	}

	a := &Archive{
		name:  name,
		part:  o.part,
		parts: make(map[string]*zip.File, len(zr.File)),
	}
	for _, file := range zr.File {
		a.parts[file.Name] = file
	}

	if _, ok := a.parts[o.part]; !ok {
		return nil, NewArchiveAccessError(name, fmt.Sprintf("missing member %s", o.part), nil)
	}

	return a, nil
}

// isZip reports whether the detected type is a zip container or a format
// built on one (docx, odt, ...)
func isZip(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

// Name returns the path or key the package was opened from
func (a *Archive) Name() string {
	return a.name
}

// DocumentPart returns the member OpenMainPart reads
func (a *Archive) DocumentPart() string {
	return a.part
}

// Parts returns all member names in sorted order
func (a *Archive) Parts() []string {
	names := make([]string, 0, len(a.parts))
	for name := range a.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenMainPart returns a forward-only stream over the document part. Repeated
// calls return the same stream; it is released by Close.
func (a *Archive) OpenMainPart() (io.ReadCloser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, NewArchiveAccessError(a.name, "archive is closed", nil)
	}
	if a.stream != nil && !a.stream.closed {
		return a.stream, nil
	}

	file, ok := a.parts[a.part]
	if !ok {
		return nil, NewArchiveAccessError(a.name, fmt.Sprintf("missing member %s", a.part), nil)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, NewArchiveAccessError(a.name, fmt.Sprintf("failed to open member %s", a.part), err)
	}
	a.stream = &partStream{ReadCloser: rc}
	return a.stream, nil
}

// Close releases the part stream and the package. Calling Close more than
// once is a no-op.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	var errs []error
	if a.stream != nil {
		errs = append(errs, a.stream.Close())
		a.stream = nil
	}
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
		a.closer = nil
	}
	return errors.Join(errs...)
}

// partStream makes Close on the part reader idempotent
type partStream struct {
	io.ReadCloser
	closed bool
}

func (s *partStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ReadCloser.Close()
}
