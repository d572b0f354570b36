// Package dataset assembles per-team season statistics into the feature table
// used for training and inference, and splits it into train/test subsets.
package dataset

import (
	"fmt"

	"github.com/yourusername/diamond-edge/internal/models"
)

// Record is one feature-table row: a team id plus its named numeric features.
type Record struct {
	TeamID int
	Values map[string]float64
}

// clone copies the record so table consumers can never mutate shared rows.
func (r *Record) clone() *Record {
	values := make(map[string]float64, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return &Record{TeamID: r.TeamID, Values: values}
}

// Table is an ordered collection of records, one per team id. Row order is
// insertion order and is preserved through filters and splits.
type Table struct {
	rows  []*Record
	index map[int]int
}

// NewTable creates an empty feature table.
func NewTable() *Table {
	return &Table{index: make(map[int]int)}
}

// Append adds a row. Duplicate team ids violate the one-row-per-team invariant.
func (t *Table) Append(r *Record) error {
	if _, exists := t.index[r.TeamID]; exists {
		return fmt.Errorf("duplicate team id %d in feature table", r.TeamID)
	}
	t.index[r.TeamID] = len(t.rows)
	t.rows = append(t.rows, r)
	return nil
}

// Row returns a copy of the row for the given team id. The copy keeps callers
// from mutating the table through a returned record.
func (t *Table) Row(teamID int) (*Record, bool) {
	i, ok := t.index[teamID]
	if !ok {
		return nil, false
	}
	return t.rows[i].clone(), true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// TeamIDs returns the team ids in row order.
func (t *Table) TeamIDs() []int {
	ids := make([]int, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.TeamID
	}
	return ids
}

// HasColumn reports whether every row carries the named feature.
func (t *Table) HasColumn(name string) bool {
	if len(t.rows) == 0 {
		return false
	}
	for _, r := range t.rows {
		if _, ok := r.Values[name]; !ok {
			return false
		}
	}
	return true
}

// Column extracts the named feature across all rows, in row order.
func (t *Table) Column(name string) ([]float64, error) {
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		v, ok := r.Values[name]
		if !ok {
			return nil, fmt.Errorf("%w: column %q missing from row for team %d", models.ErrTrainingData, name, r.TeamID)
		}
		out[i] = v
	}
	return out, nil
}

// Matrix extracts the named features across all rows as a row-major matrix.
func (t *Table) Matrix(names []string) ([][]float64, error) {
	out := make([][]float64, len(t.rows))
	for i, r := range t.rows {
		row := make([]float64, len(names))
		for j, name := range names {
			v, ok := r.Values[name]
			if !ok {
				return nil, fmt.Errorf("%w: column %q missing from row for team %d", models.ErrTrainingData, name, r.TeamID)
			}
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}

// subset builds a new table from the rows at the given positions, keeping order.
func (t *Table) subset(positions []int) *Table {
	out := NewTable()
	for _, p := range positions {
		// rows are unique by construction, Append cannot fail here
		_ = out.Append(t.rows[p])
	}
	return out
}
