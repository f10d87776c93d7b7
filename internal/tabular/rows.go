// Package tabular converts between xlsx workbooks and auction sessions.
//
// Worksheet rows are first lifted into RawRow values, a small sum type over
// empty, text and numeric cells, so the record builders never deal with
// untyped spreadsheet data directly.
package tabular

import (
	"math"
	"strconv"
	"strings"
)

// CellKind discriminates the variants of Cell
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one worksheet value
type Cell struct {
	Kind CellKind
	Text string
	Num  float64
}

// NewCell classifies a raw cell string. Whitespace-only cells are empty;
// cells that parse as a number (comma or dot decimal separator) are numeric.
func NewCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	if n, ok := parseNumber(s); ok {
		return Cell{Kind: CellNumber, Text: s, Num: n}
	}
	return Cell{Kind: CellText, Text: s}
}

// IsEmpty reports whether the cell holds nothing
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the trimmed cell text
func (c Cell) String() string {
	return c.Text
}

// Float returns the numeric value, or 0 for empty and text cells
func (c Cell) Float() float64 {
	if c.Kind != CellNumber {
		return 0
	}
	return c.Num
}

// Int returns the numeric value truncated towards zero
func (c Cell) Int() int {
	return int(math.Trunc(c.Float()))
}

// RawRow is a decoded worksheet row. Indexing past the end yields empty cells.
type RawRow []Cell

// NewRawRow decodes the string cells excelize returns for one row
func NewRawRow(cells []string) RawRow {
	row := make(RawRow, len(cells))
	for i, c := range cells {
		row[i] = NewCell(c)
	}
	return row
}

// Cell returns the cell at column i
func (r RawRow) Cell(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{Kind: CellEmpty}
	}
	return r[i]
}

// Text returns the trimmed text at column i
func (r RawRow) Text(i int) string {
	return r.Cell(i).String()
}

// Number returns the numeric value at column i, or 0
func (r RawRow) Number(i int) float64 {
	return r.Cell(i).Float()
}

// Leading reports whether the first cell has content. Rows without one mark
// the end of a section.
func (r RawRow) Leading() bool {
	return !r.Cell(0).IsEmpty()
}

// parseNumber accepts "12", "12.5" and "12,5". Anything else is not a number.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
