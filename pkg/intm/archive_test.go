package intm

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewArchive(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) []byte
		opts    []ArchiveOption
		wantErr bool
		errText string
	}{
		{
			name: "valid docx",
			setup: func(t *testing.T) []byte {
				return buildDocx(t, para("", "x"))
			},
		},
		{
			name: "empty zip",
			setup: func(t *testing.T) []byte {
				buf := new(bytes.Buffer)
				w := zip.NewWriter(buf)
				w.Close()
				return buf.Bytes()
			},
			wantErr: true,
		},
		{
			name: "non-zip file",
			setup: func(t *testing.T) []byte {
				return []byte("not a zip file")
			},
			wantErr: true,
			errText: "not a zip package",
		},
		{
			name: "empty input",
			setup: func(t *testing.T) []byte {
				return nil
			},
			wantErr: true,
		},
		{
			name: "missing document part",
			setup: func(t *testing.T) []byte {
				return buildPackage(t, map[string]string{
					"[Content_Types].xml": "<Types/>",
					"word/styles.xml":     "<styles/>",
				})
			},
			wantErr: true,
			errText: "missing member word/document.xml",
		},
		{
			name: "custom document part",
			setup: func(t *testing.T) []byte {
				return buildPackage(t, map[string]string{
					"[Content_Types].xml": "<Types/>",
					"word/footnotes.xml":  documentXML(""),
				})
			},
			opts: []ArchiveOption{WithDocumentPart("word/footnotes.xml")},
		},
		{
			name: "package too large",
			setup: func(t *testing.T) []byte {
				return buildDocx(t, para("", "x"))
			},
			opts:    []ArchiveOption{WithMaxPackageSize(16)},
			wantErr: true,
			errText: "package too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.setup(t)
			a, err := NewArchive(bytes.NewReader(data), int64(len(data)), "test.docx", tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewArchive() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !IsArchiveAccessError(err) {
					t.Errorf("expected ArchiveAccessError, got %T", err)
				}
				if tt.errText != "" && !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errText)
				}
				return
			}
			defer a.Close()
			if a.Name() != "test.docx" {
				t.Errorf("Name() = %q", a.Name())
			}
		})
	}
}

func TestArchiveParts(t *testing.T) {
	data := buildDocx(t, "")
	a, err := NewArchive(bytes.NewReader(data), int64(len(data)), "test.docx")
	if err != nil {
		t.Fatalf("NewArchive failed: %v", err)
	}
	defer a.Close()

	want := []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}
	got := a.Parts()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Parts() = %v, want %v", got, want)
	}
	if a.DocumentPart() != DefaultDocumentPart {
		t.Errorf("DocumentPart() = %q", a.DocumentPart())
	}
}

func TestArchiveOpenMainPart(t *testing.T) {
	body := para("", "Hello")
	data := buildDocx(t, body)
	a, err := NewArchive(bytes.NewReader(data), int64(len(data)), "test.docx")
	if err != nil {
		t.Fatalf("NewArchive failed: %v", err)
	}

	first, err := a.OpenMainPart()
	if err != nil {
		t.Fatalf("OpenMainPart failed: %v", err)
	}
	second, err := a.OpenMainPart()
	if err != nil {
		t.Fatalf("second OpenMainPart failed: %v", err)
	}
	if first != second {
		t.Error("repeated calls should return the same stream")
	}

	content, err := io.ReadAll(first)
	if err != nil {
		t.Fatalf("failed to read part: %v", err)
	}
	if string(content) != documentXML(body) {
		t.Errorf("part content mismatch: %q", content)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if _, err := a.OpenMainPart(); !IsArchiveAccessError(err) {
		t.Errorf("OpenMainPart after Close = %v, want ArchiveAccessError", err)
	}
}

func TestOpenArchive(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := writeDocx(t, dir, "ok.docx", para("", "x"))
		a, err := OpenArchive(path)
		if err != nil {
			t.Fatalf("OpenArchive failed: %v", err)
		}
		if err := a.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenArchive(filepath.Join(dir, "nope.docx"))
		if !IsArchiveAccessError(err) {
			t.Fatalf("expected ArchiveAccessError, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("cause should be a not-exist error: %v", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		_, err := OpenArchive(dir)
		if !IsArchiveAccessError(err) {
			t.Fatalf("expected ArchiveAccessError, got %v", err)
		}
	})

	t.Run("plain text file", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := OpenArchive(path)
		if !IsArchiveAccessError(err) {
			t.Fatalf("expected ArchiveAccessError, got %v", err)
		}
	})
}
