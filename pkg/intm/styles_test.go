package intm

import (
	"reflect"
	"testing"
)

func TestStyleFilter(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		style   string
		ignored bool
	}{
		{"default Normal", DefaultIgnoredStyles, "Normal", true},
		{"default NormalWeb", DefaultIgnoredStyles, "NormalWeb", true},
		{"default heading", DefaultIgnoredStyles, "Heading1", false},
		{"case sensitive", DefaultIgnoredStyles, "normal", false},
		{"empty filter", nil, "Normal", false},
		{"custom", []string{"Quote"}, "Quote", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewStyleFilter(tt.names...)
			if got := f.Ignored(tt.style); got != tt.ignored {
				t.Errorf("Ignored(%q) = %v, want %v", tt.style, got, tt.ignored)
			}
		})
	}
}

func TestStyleFilterNames(t *testing.T) {
	f := NewStyleFilter("Zeta", "Alpha", "Alpha")
	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}
	if got := f.Names(); !reflect.DeepEqual(got, []string{"Alpha", "Zeta"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestStyleFilterIsolated(t *testing.T) {
	names := []string{"Normal"}
	f := NewStyleFilter(names...)
	names[0] = "Changed"
	if !f.Ignored("Normal") || f.Ignored("Changed") {
		t.Error("filter should not alias the caller's slice")
	}
}
