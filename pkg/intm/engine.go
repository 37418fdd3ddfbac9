package intm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/benjaminschreck/docx2intm/pkg/intm/xml"
)

// Markers written to the intermediate output.
const (
	lineTerminator = "\n"
	paragraphOpen  = "<p>"
	tableOpen      = "<table>\n"
	tableClose     = "</table>\n"
	tabEscape      = `\t`
	breakMarker    = "<br/>"
	crEscape       = `\r`
)

// Stats summarizes one conversion.
type Stats struct {
	ID            string
	Events        int
	Paragraphs    int
	Styles        int
	Tables        int
	Rows          int
	Cells         int
	MaxTableDepth int
	BytesWritten  int64
	Duration      time.Duration
}

// Engine converts tag events into intermediate markup. An Engine holds no
// per-conversion state and may be shared between goroutines.
type Engine struct {
	styles StyleFilter
	logger *Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithIgnoredStyles replaces the set of styles that never produce a marker
func WithIgnoredStyles(names ...string) EngineOption {
	return func(e *Engine) {
		e.styles = NewStyleFilter(names...)
	}
}

// WithStyleFilter sets a prebuilt style filter
func WithStyleFilter(f StyleFilter) EngineOption {
	return func(e *Engine) {
		e.styles = f
	}
}

// WithEngineLogger sets the logger used for conversion tracing
func WithEngineLogger(l *Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine ignoring DefaultIgnoredStyles unless
// configured otherwise.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{styles: NewStyleFilter(DefaultIgnoredStyles...)}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = GetLogger()
	}
	return e
}

// IgnoredStyles returns the styles this engine suppresses
func (e *Engine) IgnoredStyles() []string {
	return e.styles.Names()
}

// Convert runs a single forward pass over src, writing markup to w. Output
// is flushed even when the pass fails, so a partial result stays in w.
func (e *Engine) Convert(src xml.EventSource, w io.Writer) (stats *Stats, err error) {
	s := e.NewSession(w)
	defer func() {
		if ferr := s.Flush(); ferr != nil && err == nil {
			err = ferr
		}
		st := s.Stats()
		stats = &st
	}()

	for {
		ev, nerr := src.Next()
		if nerr == io.EOF {
			return nil, nil
		}
		if nerr != nil {
			s.err = sourceError(nerr)
			return nil, s.err
		}
		if herr := s.Handle(ev); herr != nil {
			return nil, herr
		}
	}
}

// sourceError classifies a failure of the event source
func sourceError(err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &XMLWellFormednessError{Line: se.Line, Column: se.Column, Cause: se.Err}
	}
	return NewArchiveAccessError("", "failed to read document part", err)
}

// Session is the state of one conversion: the pending line break flag and
// the stack of open tables. Sessions are not safe for concurrent use.
type Session struct {
	w       *bufio.Writer
	logger  *Logger
	styles  StyleFilter
	pending bool
	tables  tableStack
	stats   Stats
	started time.Time
	err     error
}

// NewSession starts a conversion writing to w
func (e *Engine) NewSession(w io.Writer) *Session {
	id := xid.New().String()
	return &Session{
		w:       bufio.NewWriter(w),
		logger:  e.logger.WithField("conversion", id),
		styles:  e.styles,
		stats:   Stats{ID: id},
		started: time.Now(),
	}
}

type handler func(*Session, xml.TagEvent) error

type dispatchKey struct {
	tag  xml.Tag
	kind xml.EventKind
}

// dispatch maps each (tag, event kind) pair to its rule. Pairs not listed
// are ignored.
var dispatch = map[dispatchKey]handler{
	{xml.TagText, xml.End}:             (*Session).onText,
	{xml.TagParagraph, xml.Start}:      (*Session).onParagraph,
	{xml.TagParagraphStyle, xml.Start}: (*Session).onParagraphStyle,
	{xml.TagTable, xml.Start}:          (*Session).onTableStart,
	{xml.TagTable, xml.End}:            (*Session).onTableEnd,
	{xml.TagRow, xml.Start}:            (*Session).onRowStart,
	{xml.TagRow, xml.End}:              (*Session).onRowEnd,
	{xml.TagCell, xml.Start}:           (*Session).onCellStart,
	{xml.TagCell, xml.End}:             (*Session).onCellEnd,
	{xml.TagGridSpan, xml.Start}:       (*Session).onGridSpan,
	{xml.TagTab, xml.Start}:            (*Session).onTab,
	{xml.TagBreak, xml.Start}:          (*Session).onBreak,
	{xml.TagCarriageReturn, xml.Start}: (*Session).onCarriageReturn,
}

// Handle applies one event. After a failure every further call returns the
// same error.
func (s *Session) Handle(ev xml.TagEvent) error {
	if s.err != nil {
		return s.err
	}
	s.stats.Events++

	h, ok := dispatch[dispatchKey{ev.Tag, ev.Kind}]
	if !ok {
		return nil
	}
	s.logger.DebugEvent(ev)
	if err := h(s, ev); err != nil {
		s.err = err
		return err
	}
	return nil
}

// PendingLineBreak reports whether a terminator is owed before the next
// structural marker
func (s *Session) PendingLineBreak() bool {
	return s.pending
}

// TableDepth returns the number of currently open tables
func (s *Session) TableDepth() int {
	return s.tables.depth()
}

// Stats returns counters collected so far
func (s *Session) Stats() Stats {
	st := s.stats
	st.Duration = time.Since(s.started)
	return st
}

// Flush writes buffered output. A trailing pending line break is not
// written.
func (s *Session) Flush() error {
	if err := s.w.Flush(); err != nil {
		return &OutputError{Operation: "flush", Cause: err}
	}
	return nil
}

func (s *Session) write(str string) error {
	n, err := s.w.WriteString(str)
	s.stats.BytesWritten += int64(n)
	if err != nil {
		return &OutputError{Operation: "write", Cause: err}
	}
	return nil
}

func (s *Session) flushPending() error {
	if !s.pending {
		return nil
	}
	s.pending = false
	return s.write(lineTerminator)
}

func (s *Session) marker(str string) error {
	s.logger.DebugMarker(str, s.tables.depth())
	return s.write(str)
}

func (s *Session) onText(ev xml.TagEvent) error {
	if err := s.write(ev.Text); err != nil {
		return err
	}
	s.pending = true
	return nil
}

func (s *Session) onParagraph(xml.TagEvent) error {
	if err := s.flushPending(); err != nil {
		return err
	}
	if err := s.marker(paragraphOpen); err != nil {
		return err
	}
	s.stats.Paragraphs++
	s.pending = true
	return nil
}

func (s *Session) onParagraphStyle(ev xml.TagEvent) error {
	if len(ev.Attrs) == 0 {
		return nil
	}
	style := ev.Attrs[xml.AttrVal]
	if style == "" || s.styles.Ignored(style) {
		return nil
	}
	s.stats.Styles++
	return s.marker("<div class='" + style + "'/>")
}

func (s *Session) onTableStart(xml.TagEvent) error {
	if err := s.flushPending(); err != nil {
		return err
	}
	if err := s.marker(tableOpen); err != nil {
		return err
	}
	s.tables.push()
	s.stats.Tables++
	if d := s.tables.depth(); d > s.stats.MaxTableDepth {
		s.stats.MaxTableDepth = d
	}
	return nil
}

func (s *Session) onTableEnd(ev xml.TagEvent) error {
	if _, err := s.tables.pop(ev.Tag); err != nil {
		return err
	}
	if err := s.flushPending(); err != nil {
		return err
	}
	return s.marker(tableClose)
}

func (s *Session) onRowStart(ev xml.TagEvent) error {
	pos, err := s.tables.top(ev.Tag)
	if err != nil {
		return err
	}
	if err := s.flushPending(); err != nil {
		return err
	}
	s.stats.Rows++
	return s.marker(pos.RowStart())
}

func (s *Session) onRowEnd(ev xml.TagEvent) error {
	pos, err := s.tables.top(ev.Tag)
	if err != nil {
		return err
	}
	if err := s.flushPending(); err != nil {
		return err
	}
	return s.marker(pos.RowEnd())
}

func (s *Session) onCellStart(ev xml.TagEvent) error {
	pos, err := s.tables.top(ev.Tag)
	if err != nil {
		return err
	}
	if err := s.flushPending(); err != nil {
		return err
	}
	s.stats.Cells++
	return s.marker(pos.CellStart())
}

func (s *Session) onCellEnd(ev xml.TagEvent) error {
	pos, err := s.tables.top(ev.Tag)
	if err != nil {
		return err
	}
	if err := s.flushPending(); err != nil {
		return err
	}
	return s.marker(pos.CellEnd())
}

func (s *Session) onGridSpan(ev xml.TagEvent) error {
	if len(ev.Attrs) == 0 {
		return nil
	}
	raw, ok := ev.Attrs[xml.AttrVal]
	if !ok {
		return &AttributeFormatError{
			Tag:       ev.Tag.String(),
			Attribute: "w:val",
			Cause:     errors.New("attribute missing"),
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return &AttributeFormatError{Tag: ev.Tag.String(), Attribute: "w:val", Value: raw, Cause: err}
	}
	if n < 1 {
		return &AttributeFormatError{
			Tag:       ev.Tag.String(),
			Attribute: "w:val",
			Value:     raw,
			Cause:     fmt.Errorf("span must be a positive integer"),
		}
	}

	pos, err := s.tables.top(ev.Tag)
	if err != nil {
		return err
	}
	return pos.Span(n)
}

func (s *Session) onTab(xml.TagEvent) error {
	if err := s.write(tabEscape); err != nil {
		return err
	}
	s.pending = true
	return nil
}

func (s *Session) onBreak(xml.TagEvent) error {
	if err := s.marker(breakMarker); err != nil {
		return err
	}
	s.pending = true
	return nil
}

func (s *Session) onCarriageReturn(xml.TagEvent) error {
	if err := s.write(crEscape); err != nil {
		return err
	}
	s.pending = true
	return nil
}
