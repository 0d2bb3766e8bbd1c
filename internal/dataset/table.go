// Package dataset holds uploaded tables for a single render pass: parsing,
// previews and summary statistics.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmptyTable indicates the input held no header row.
	ErrEmptyTable = errors.New("dataset: no columns to parse from file")
	// ErrMalformed indicates the input could not be parsed as a table.
	ErrMalformed = errors.New("dataset: malformed table")
	// ErrUnsupportedFormat indicates an upload with an unknown extension.
	ErrUnsupportedFormat = errors.New("dataset: unsupported file format")
	// ErrNoSuchColumn indicates a column name absent from the table.
	ErrNoSuchColumn = errors.New("dataset: no such column")
	// ErrNotNumeric indicates a column holding non-numeric cells.
	ErrNotNumeric = errors.New("dataset: column is not numeric")
)

// Table is a parsed two-dimensional dataset. Missing cells are empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable normalises the header and pads short rows. Rows wider than the
// header are rejected.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyTable
	}
	columns := uniqueColumns(header)
	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("%w: expected %d fields in line %d, saw %d", ErrMalformed, len(columns), i+2, len(row))
		}
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		}
		out = append(out, row)
	}
	return &Table{Columns: columns, Rows: out}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Head returns a table with at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	rows := make([][]string, n)
	copy(rows, t.Rows[:n])
	return &Table{Columns: t.Columns, Rows: rows}
}

// Index returns the position of the named column.
func (t *Table) Index(column string) (int, error) {
	for i, c := range t.Columns {
		if c == column {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNoSuchColumn, column)
}

// Numeric returns the non-missing values of a column. The column must hold
// at least one value and every non-missing cell must parse as a number.
func (t *Table) Numeric(column string) ([]float64, error) {
	idx, err := t.Index(column)
	if err != nil {
		return nil, err
	}
	values, ok := t.numericAt(idx)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, column)
	}
	return values, nil
}

// XY returns paired values of two numeric columns, dropping rows where
// either cell is missing.
func (t *Table) XY(xColumn, yColumn string) ([]float64, []float64, error) {
	xi, err := t.Index(xColumn)
	if err != nil {
		return nil, nil, err
	}
	yi, err := t.Index(yColumn)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := t.numericAt(xi); !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotNumeric, xColumn)
	}
	if _, ok := t.numericAt(yi); !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotNumeric, yColumn)
	}
	xs := make([]float64, 0, len(t.Rows))
	ys := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		x, xok := parseCell(row[xi])
		y, yok := parseCell(row[yi])
		if !xok || !yok {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

func (t *Table) numericAt(idx int) ([]float64, bool) {
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		v, present, err := parseNumber(row[idx])
		if err != nil {
			return nil, false
		}
		if present {
			values = append(values, v)
		}
	}
	return values, len(values) > 0
}

func parseCell(cell string) (float64, bool) {
	v, present, err := parseNumber(cell)
	return v, present && err == nil
}

// parseNumber reads a numeric cell. Missing markers and non-finite values
// such as Infinity or 1e400 are reported as absent.
func parseNumber(cell string) (float64, bool, error) {
	cell = strings.TrimSpace(cell)
	if isMissing(cell) {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false, nil
	}
	return v, true, nil
}

func isMissing(cell string) bool {
	switch cell {
	case "", "NaN", "nan", "NA", "N/A", "null", "NULL":
		return true
	}
	return false
}

// uniqueColumns fills blank names and suffixes duplicates with .1, .2, ...
func uniqueColumns(header []string) []string {
	columns := make([]string, len(header))
	used := make(map[string]bool, len(header))
	dupes := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for used[candidate] {
			dupes[name]++
			candidate = fmt.Sprintf("%s.%d", name, dupes[name])
		}
		used[candidate] = true
		columns[i] = candidate
	}
	return columns
}
