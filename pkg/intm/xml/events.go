package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EventKind distinguishes element starts from element ends.
type EventKind int

const (
	Start EventKind = iota
	End
)

func (k EventKind) String() string {
	switch k {
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// AttrVal is the fully-qualified name of the w:val attribute.
var AttrVal = Qualify(WordprocessingML, "val")

// TagEvent is a single start or end of an element.
type TagEvent struct {
	Kind EventKind
	// Name is the fully-qualified element name ("{uri}local"), or the bare
	// local name for elements without a namespace.
	Name string
	// Tag is Name resolved once by the producer.
	Tag Tag
	// Attrs is keyed by fully-qualified attribute name. Namespace
	// declarations are not included.
	Attrs map[string]string
	// Text holds the character data directly inside the element before its
	// first child. Only set on End events.
	Text string
}

// Attr returns the value of a fully-qualified or prefixed attribute name.
func (e TagEvent) Attr(name string) (string, bool) {
	v, ok := e.Attrs[Normalize(name)]
	return v, ok
}

// NewStart builds a start event from a prefixed or fully-qualified name.
func NewStart(name string, attrs map[string]string) TagEvent {
	q := Normalize(name)
	var normalized map[string]string
	if len(attrs) > 0 {
		normalized = make(map[string]string, len(attrs))
		for k, v := range attrs {
			normalized[Normalize(k)] = v
		}
	}
	return TagEvent{Kind: Start, Name: q, Tag: ResolveName(q), Attrs: normalized}
}

// NewEnd builds an end event carrying text.
func NewEnd(name, text string) TagEvent {
	q := Normalize(name)
	return TagEvent{Kind: End, Name: q, Tag: ResolveName(q), Text: text}
}

// EventSource produces tag events lazily. Next returns io.EOF once the
// sequence is exhausted.
type EventSource interface {
	Next() (TagEvent, error)
}

// SyntaxError reports malformed markup at a position in the input.
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed xml at line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

type frame struct {
	text     strings.Builder
	hasChild bool
}

// DecoderSource is an EventSource backed by encoding/xml tokens.
type DecoderSource struct {
	dec    *xml.Decoder
	frames []*frame
	done   bool
}

// NewDecoderSource reads tag events from r.
func NewDecoderSource(r io.Reader) *DecoderSource {
	return &DecoderSource{dec: xml.NewDecoder(r)}
}

// Next returns the next tag event.
func (s *DecoderSource) Next() (TagEvent, error) {
	if s.done {
		return TagEvent{}, io.EOF
	}
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			s.done = true
			if len(s.frames) > 0 {
				return TagEvent{}, s.syntaxError(errors.New("unexpected end of input"))
			}
			return TagEvent{}, io.EOF
		}
		if err != nil {
			s.done = true
			return TagEvent{}, s.syntaxError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if n := len(s.frames); n > 0 {
				s.frames[n-1].hasChild = true
			}
			s.frames = append(s.frames, &frame{})
			return TagEvent{
				Kind:  Start,
				Name:  Qualify(t.Name.Space, t.Name.Local),
				Tag:   Resolve(t.Name.Space, t.Name.Local),
				Attrs: attrMap(t.Attr),
			}, nil
		case xml.EndElement:
			var text string
			if n := len(s.frames); n > 0 {
				text = s.frames[n-1].text.String()
				s.frames = s.frames[:n-1]
			}
			return TagEvent{
				Kind: End,
				Name: Qualify(t.Name.Space, t.Name.Local),
				Tag:  Resolve(t.Name.Space, t.Name.Local),
				Text: text,
			}, nil
		case xml.CharData:
			if n := len(s.frames); n > 0 && !s.frames[n-1].hasChild {
				s.frames[n-1].text.Write(t)
			}
		}
	}
}

// Depth reports the current element nesting depth.
func (s *DecoderSource) Depth() int {
	return len(s.frames)
}

func (s *DecoderSource) syntaxError(err error) error {
	line, col := s.dec.InputPos()
	return &SyntaxError{Line: line, Column: col, Err: err}
}

func attrMap(attrs []xml.Attr) map[string]string {
	var m map[string]string
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		if m == nil {
			m = make(map[string]string, len(attrs))
		}
		m[Qualify(a.Name.Space, a.Name.Local)] = a.Value
	}
	return m
}

// SliceSource replays a fixed sequence of events.
type SliceSource struct {
	events []TagEvent
	pos    int
}

// NewSliceSource returns a source over events.
func NewSliceSource(events ...TagEvent) *SliceSource {
	return &SliceSource{events: events}
}

// Next returns the next event or io.EOF.
func (s *SliceSource) Next() (TagEvent, error) {
	if s.pos >= len(s.events) {
		return TagEvent{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}
