// Package metrictable is a small string-valued table keyed by row and column
// labels. It is enough to merge per-sample metric columns, pivot them, and
// write them out as CSV.
package metrictable

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMetricMismatch is returned by a strict join when the two sides do not
// carry the same set of row keys.
var ErrMetricMismatch = errors.New("metric sets differ")

// Table holds string cells addressed by ordered row and column keys. Values is
// row-major: Values[i][j] is the cell at Rows[i], Columns[j]. Tables are
// treated as values; the operations below return new tables and never modify
// their inputs.
type Table struct {
	Rows    []string
	Columns []string
	Values  [][]string
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{
		Rows:    make([]string, 0),
		Columns: append([]string(nil), columns...),
		Values:  make([][]string, 0),
	}
}

// Append adds a row. The number of values must match the number of columns.
func (t *Table) Append(row string, values ...string) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("row %q has %d values but the table has %d columns", row, len(values), len(t.Columns))
	}

	t.Rows = append(t.Rows, row)
	t.Values = append(t.Values, append([]string(nil), values...))

	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Row returns the cells of the first row with the given key.
func (t *Table) Row(key string) ([]string, bool) {
	for i, r := range t.Rows {
		if r == key {
			return t.Values[i], true
		}
	}

	return nil, false
}

// Get returns a single cell.
func (t *Table) Get(row, column string) (string, bool) {
	vals, ok := t.Row(row)
	if !ok {
		return "", false
	}
	for j, c := range t.Columns {
		if c == column {
			return vals[j], true
		}
	}

	return "", false
}

// index maps each row key to the position of its first occurrence.
func (t *Table) index() map[string]int {
	idx := make(map[string]int, len(t.Rows))
	for i, r := range t.Rows {
		if _, exists := idx[r]; !exists {
			idx[r] = i
		}
	}

	return idx
}

// InnerJoin merges the columns of right onto left, keeping only rows whose
// key appears in both. Row order follows left. If strict is set, any row key
// present on only one side is reported as ErrMetricMismatch instead of being
// dropped.
func InnerJoin(left, right *Table, strict bool) (*Table, error) {
	rightIdx := right.index()

	if strict {
		leftIdx := left.index()
		var onlyLeft, onlyRight []string
		for _, r := range left.Rows {
			if _, ok := rightIdx[r]; !ok {
				onlyLeft = append(onlyLeft, r)
			}
		}
		for _, r := range right.Rows {
			if _, ok := leftIdx[r]; !ok {
				onlyRight = append(onlyRight, r)
			}
		}
		if len(onlyLeft) > 0 || len(onlyRight) > 0 {
			return nil, fmt.Errorf("%w: missing from %s: [%s]; not seen before %s: [%s]",
				ErrMetricMismatch,
				strings.Join(right.Columns, ","), strings.Join(onlyLeft, ", "),
				strings.Join(right.Columns, ","), strings.Join(onlyRight, ", "))
		}
	}

	out := New(append(append([]string(nil), left.Columns...), right.Columns...)...)
	for i, r := range left.Rows {
		j, ok := rightIdx[r]
		if !ok {
			continue
		}

		vals := make([]string, 0, len(out.Columns))
		vals = append(vals, left.Values[i]...)
		vals = append(vals, right.Values[j]...)
		out.Rows = append(out.Rows, r)
		out.Values = append(out.Values, vals)
	}

	return out, nil
}

// Fold joins tables left to right. The first table seeds the accumulator and
// each later table is inner joined onto it. Folding nothing yields an empty
// table.
func Fold(tables []*Table, strict bool) (*Table, error) {
	if len(tables) == 0 {
		return New(), nil
	}

	acc := tables[0].Clone()
	for _, t := range tables[1:] {
		var err error
		acc, err = InnerJoin(acc, t, strict)
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = append(out.Rows, t.Rows...)
	for _, v := range t.Values {
		out.Values = append(out.Values, append([]string(nil), v...))
	}

	return out
}

// Transpose swaps the row and column axes.
func (t *Table) Transpose() *Table {
	out := New(t.Rows...)
	for j, c := range t.Columns {
		vals := make([]string, len(t.Rows))
		for i := range t.Rows {
			vals[i] = t.Values[i][j]
		}
		out.Rows = append(out.Rows, c)
		out.Values = append(out.Values, vals)
	}

	return out
}
