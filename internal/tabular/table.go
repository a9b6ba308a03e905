// Package tabular is the I/O boundary of the pipeline: a named-column table
// container, CSV read/write, and the batch runner that appends the derived
// columns to every observation row. It owns no formula logic.
package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is an ordered, rectangular block of named columns. Cells are kept as
// their original strings so passthrough columns (ids, dates, notes) survive
// a round trip untouched; numeric access parses on demand.
type Table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

// New builds an empty table with the given header. Column names must be
// unique.
func New(header []string) (*Table, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := idx[name]; dup {
			return nil, fmt.Errorf("tabular: duplicate column %q", name)
		}
		idx[name] = i
	}
	h := make([]string, len(header))
	copy(h, header)
	return &Table{header: h, index: idx}, nil
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	h := make([]string, len(t.header))
	copy(h, t.header)
	return h
}

// Len is the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Column resolves a column name to its index.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// AppendRow adds one row; its arity must match the header.
func (t *Table) AppendRow(cells []string) error {
	if len(cells) != len(t.header) {
		return fmt.Errorf("tabular: row has %d cells, header has %d columns", len(cells), len(t.header))
	}
	row := make([]string, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Cell returns the raw cell at (row, col).
func (t *Table) Cell(row, col int) string { return t.rows[row][col] }

// Float parses the cell at (row, col) as a float64.
func (t *Table) Float(row, col int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.rows[row][col]), 64)
	if err != nil {
		return 0, fmt.Errorf("tabular: column %q row %d: %w", t.header[col], row, err)
	}
	return v, nil
}

// AddColumn appends a named column on the right; values must cover every
// row.
func (t *Table) AddColumn(name string, values []string) error {
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("tabular: duplicate column %q", name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("tabular: column %q has %d values for %d rows", name, len(values), len(t.rows))
	}
	t.index[name] = len(t.header)
	t.header = append(t.header, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], values[i])
	}
	return nil
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	out, _ := New(t.header)
	out.rows = make([][]string, len(t.rows))
	for i, row := range t.rows {
		out.rows[i] = make([]string, len(row))
		copy(out.rows[i], row)
	}
	return out
}
