package types

import (
	"encoding/gob"
	"fmt"
)

func init() {
	// Frames and generic JSON-shaped values travel through gob blobs as
	// interface values, so their concrete types must be registered. Basic
	// scalars and slices are pre-registered by gob itself.
	gob.Register(&Frame{})
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// Frame is the tabular value the format codecs parse into and write from:
// named columns over row-major cells. Cell types depend on the source
// format; delimited text yields strings, binary stat formats yield their
// native numeric and string types.
type Frame struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NumRows returns the row count.
func (f *Frame) NumRows() int { return len(f.Rows) }

// NumCols returns the column count.
func (f *Frame) NumCols() int { return len(f.Columns) }

// Equal compares two frames column-wise, ignoring representation-only
// differences: cells are compared by their printed form, so 1 and "1"
// are equal.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || len(f.Columns) != len(other.Columns) || len(f.Rows) != len(other.Rows) {
		return false
	}
	for i, c := range f.Columns {
		if c != other.Columns[i] {
			return false
		}
	}
	for i, row := range f.Rows {
		if len(row) != len(other.Rows[i]) {
			return false
		}
		for j, cell := range row {
			if fmt.Sprint(cell) != fmt.Sprint(other.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}
