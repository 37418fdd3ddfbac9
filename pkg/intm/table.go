package intm

import (
	"fmt"

	"github.com/benjaminschreck/docx2intm/pkg/intm/xml"
)

// TablePosition tracks the row and column of one open table.
//
// Column numbers are 1-based and span-adjusted: a cell that spans n grid
// columns keeps its own number and pushes the next cell's number by n-1.
type TablePosition struct {
	row int
	col int
}

// Row returns the current row number (0 before the first row).
func (p *TablePosition) Row() int { return p.row }

// Col returns the current column number (0 before the first cell of a row).
func (p *TablePosition) Col() int { return p.col }

// RowStart advances to the next row and returns its open marker.
func (p *TablePosition) RowStart() string {
	p.row++
	p.col = 0
	return fmt.Sprintf("<tr row='%d'>\n", p.row)
}

// RowEnd returns the row close marker.
func (p *TablePosition) RowEnd() string {
	return "</tr>\n"
}

// CellStart advances to the next cell and returns its open marker.
func (p *TablePosition) CellStart() string {
	p.col++
	return fmt.Sprintf("<tc col='%d'>\n", p.col)
}

// CellEnd returns the cell close marker.
func (p *TablePosition) CellEnd() string {
	return "</tc>\n"
}

// Span records that the current cell covers n grid columns.
func (p *TablePosition) Span(n int) error {
	if n < 1 {
		return &StructureError{
			Tag:     xml.TagGridSpan.String(),
			Message: fmt.Sprintf("span of %d columns", n),
		}
	}
	p.col += n - 1
	return nil
}

// tableStack holds the positions of the currently open tables, innermost
// last.
type tableStack struct {
	items []*TablePosition
}

func (s *tableStack) push() *TablePosition {
	p := &TablePosition{}
	s.items = append(s.items, p)
	return p
}

func (s *tableStack) pop(tag xml.Tag) (*TablePosition, error) {
	n := len(s.items)
	if n == 0 {
		return nil, &StructureError{Tag: tag.String(), Message: "no open table"}
	}
	p := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return p, nil
}

func (s *tableStack) top(tag xml.Tag) (*TablePosition, error) {
	n := len(s.items)
	if n == 0 {
		return nil, &StructureError{Tag: tag.String(), Message: "no open table"}
	}
	return s.items[n-1], nil
}

func (s *tableStack) depth() int {
	return len(s.items)
}
