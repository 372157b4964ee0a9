package output

import (
	"fmt"
	"strconv"
	"time"
)

// Table is one parsed engine output file: named columns over string cells,
// optionally indexed by a reconstructed calendar date per row.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	// Dates holds one reconstructed date per row when the source table
	// carried both the year and day-of-year columns; nil otherwise.
	Dates []time.Time
}

// NumRows returns the number of data rows in the table.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all cells of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("table %s: no column %q", t.Name, name)
	}
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[idx]
	}
	return cells, nil
}

// Floats returns the named column parsed as float64 values.
func (t *Table) Floats(name string) ([]float64, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("table %s: column %q row %d: %w", t.Name, name, i, err)
		}
		values[i] = v
	}
	return values, nil
}
