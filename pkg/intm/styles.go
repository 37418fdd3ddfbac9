package intm

import "sort"

// DefaultIgnoredStyles are paragraph styles that carry no structure.
var DefaultIgnoredStyles = []string{"Normal", "NormalWeb"}

// StyleFilter is an immutable set of ignored paragraph style names.
type StyleFilter struct {
	names map[string]struct{}
}

// NewStyleFilter builds a filter ignoring the given style names.
func NewStyleFilter(names ...string) StyleFilter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return StyleFilter{names: set}
}

// Ignored reports whether style never produces a marker.
func (f StyleFilter) Ignored(style string) bool {
	_, ok := f.names[style]
	return ok
}

// Names returns the ignored styles in sorted order.
func (f StyleFilter) Names() []string {
	out := make([]string, 0, len(f.names))
	for n := range f.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of ignored styles.
func (f StyleFilter) Len() int {
	return len(f.names)
}
