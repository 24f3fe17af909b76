// Package dataset holds the tabular survey dataset shared by the statistics engines.
package dataset

import (
	"fmt"
	"time"
)

// Kind is the value type carried by a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindTime
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindTime:
		return "datetime"
	case KindCategory:
		return "categorical"
	default:
		return "unknown"
	}
}

// Cell is a single value. Invalid cells are missing; which of Text, Num or
// Time is meaningful depends on the owning column's Kind.
type Cell struct {
	Valid bool
	Text  string
	Num   float64
	Time  time.Time
}

// Missing is the zero Cell.
var Missing = Cell{}

func TextCell(s string) Cell         { return Cell{Valid: true, Text: s} }
func NumberCell(x float64) Cell      { return Cell{Valid: true, Num: x} }
func TimeCell(t time.Time) Cell      { return Cell{Valid: true, Time: t} }
func CategoryCell(label string) Cell { return Cell{Valid: true, Text: label} }

// Column is a named, typed sequence of cells aligned with dataset rows.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// NonNull counts valid cells.
func (c *Column) NonNull() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Valid {
			n++
		}
	}
	return n
}

// Dataset is an ordered set of equally long columns. Every row carries
// every column; absent values are stored as Missing cells.
type Dataset struct {
	rows  int
	cols  []*Column
	index map[string]int
}

// New returns an empty dataset with the given number of rows.
func New(rows int) *Dataset {
	return &Dataset{rows: rows, index: make(map[string]int)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.cols) }

// Empty reports whether the dataset holds no responses or no questions.
func (d *Dataset) Empty() bool { return d.rows == 0 || len(d.cols) == 0 }

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name
	}
	return out
}

// Column returns the named column.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// SetColumn appends c, or replaces the existing column with the same name
// in place. The column must have exactly one cell per row.
func (d *Dataset) SetColumn(c *Column) error {
	if c == nil {
		return fmt.Errorf("set column: nil column")
	}
	if len(c.Cells) != d.rows {
		return fmt.Errorf("set column %q: %d cells for %d rows", c.Name, len(c.Cells), d.rows)
	}
	if i, ok := d.index[c.Name]; ok {
		d.cols[i] = c
		return nil
	}
	d.index[c.Name] = len(d.cols)
	d.cols = append(d.cols, c)
	return nil
}

// Cell returns the value at row i of the named column.
func (d *Dataset) Cell(name string, i int) (Cell, bool) {
	c, ok := d.Column(name)
	if !ok || i < 0 || i >= d.rows {
		return Missing, false
	}
	return c.Cells[i], true
}

// NumericColumns lists numeric columns in column order.
func (d *Dataset) NumericColumns() []string {
	var out []string
	for _, c := range d.cols {
		if c.Kind == KindNumeric {
			out = append(out, c.Name)
		}
	}
	return out
}

// Floats returns the valid values of a numeric column together with the
// row index each came from. Non-numeric or unknown columns yield nothing.
func (d *Dataset) Floats(name string) (vals []float64, rows []int) {
	c, ok := d.Column(name)
	if !ok || c.Kind != KindNumeric {
		return nil, nil
	}
	for i, cell := range c.Cells {
		if cell.Valid {
			vals = append(vals, cell.Num)
			rows = append(rows, i)
		}
	}
	return vals, rows
}
