package intm

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "ArchiveAccessError",
			err:     &ArchiveAccessError{Path: "in.docx", Reason: "not a zip archive"},
			wantMsg: "archive access error for 'in.docx': not a zip archive",
		},
		{
			name:    "ArchiveAccessError with cause",
			err:     &ArchiveAccessError{Reason: "missing part", Cause: errors.New("not found")},
			wantMsg: "archive access error: missing part: not found",
		},
		{
			name:    "XMLWellFormednessError",
			err:     &XMLWellFormednessError{Line: 3, Column: 14, Cause: errors.New("unexpected end element")},
			wantMsg: "xml error at line 3, column 14: unexpected end element",
		},
		{
			name:    "XMLWellFormednessError without position",
			err:     &XMLWellFormednessError{Cause: errors.New("bad")},
			wantMsg: "xml error: bad",
		},
		{
			name:    "AttributeFormatError",
			err:     &AttributeFormatError{Tag: "w:gridSpan", Attribute: "w:val", Value: "two"},
			wantMsg: "invalid w:val value 'two' on w:gridSpan",
		},
		{
			name:    "OutputError",
			err:     &OutputError{Operation: "create", Path: "out.txt", Cause: errors.New("permission denied")},
			wantMsg: "output error during create of 'out.txt': permission denied",
		},
		{
			name:    "OutputError without path",
			err:     &OutputError{Operation: "write", Cause: errors.New("short write")},
			wantMsg: "output error during write: short write",
		},
		{
			name:    "StructureError",
			err:     &StructureError{Tag: "w:tr", Message: "no open table"},
			wantMsg: "structure error at w:tr: no open table",
		},
		{
			name:    "ValidationError",
			err:     &ValidationError{Issues: []ValidationIssue{{Field: "concurrency", Message: "must be at least 1"}}},
			wantMsg: "validation error: concurrency - must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	base := errors.New("base error")

	wrapped := []error{
		NewArchiveAccessError("x.docx", "open", base),
		&XMLWellFormednessError{Line: 1, Column: 1, Cause: base},
		&AttributeFormatError{Tag: "w:gridSpan", Attribute: "w:val", Cause: base},
		&OutputError{Operation: "write", Cause: base},
	}
	for _, err := range wrapped {
		if !errors.Is(err, base) {
			t.Errorf("%T should wrap the base error", err)
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := func(err error) error {
		return errors.Join(errors.New("context"), err)
	}

	if !IsArchiveAccessError(wrapped(&ArchiveAccessError{})) {
		t.Error("IsArchiveAccessError failed")
	}
	if !IsXMLWellFormednessError(wrapped(&XMLWellFormednessError{})) {
		t.Error("IsXMLWellFormednessError failed")
	}
	if !IsAttributeFormatError(wrapped(&AttributeFormatError{})) {
		t.Error("IsAttributeFormatError failed")
	}
	if !IsOutputError(wrapped(&OutputError{})) {
		t.Error("IsOutputError failed")
	}
	if !IsStructureError(wrapped(&StructureError{})) {
		t.Error("IsStructureError failed")
	}
	if IsOutputError(&StructureError{}) {
		t.Error("IsOutputError should not match a StructureError")
	}
}

func TestMultiError(t *testing.T) {
	m := NewMultiError()
	if m.Err() != nil {
		t.Error("empty MultiError should return nil")
	}

	m.Add(nil)
	if m.Len() != 0 {
		t.Error("nil errors should be ignored")
	}

	first := &OutputError{Operation: "write", Cause: errors.New("a")}
	m.Add(first)
	if m.Err() != first {
		t.Error("single error should be returned as is")
	}

	m.Add(&StructureError{Tag: "w:tc", Message: "no open table"})
	err := m.Err()
	if err == nil || m.Len() != 2 {
		t.Fatalf("expected 2 errors, got %d", m.Len())
	}
	if !strings.Contains(err.Error(), "2 errors occurred") {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !IsStructureError(err) || !IsOutputError(err) {
		t.Error("MultiError should expose collected errors to errors.As")
	}
}
