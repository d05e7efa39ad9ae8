// Readers for the binary statistical-package formats. These are read-only:
// the ecosystem has readers for Stata .dta and SAS .sas7bdat but no
// maintained writers, and larder never needs to produce them.
package codec

import (
	"bytes"
	"fmt"

	"github.com/kshedden/datareader"

	"github.com/fathomdata/larder/pkg/types"
)

// parseStata reads a Stata .dta file into a Frame.
func parseStata(data []byte, _ types.CatalogEntry) (any, error) {
	rdr, err := datareader.NewStataReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening stata file: %w", err)
	}
	return statToFrame(rdr)
}

// parseSAS reads a SAS .sas7bdat file into a Frame.
func parseSAS(data []byte, _ types.CatalogEntry) (any, error) {
	rdr, err := datareader.NewSAS7BDATReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening sas file: %w", err)
	}
	return statToFrame(rdr)
}

// statToFrame drains a stat-file reader into a column-named Frame. Missing
// values become nil cells.
func statToFrame(rdr datareader.StatfileReader) (*types.Frame, error) {
	series, err := rdr.Read(-1)
	if err != nil {
		return nil, fmt.Errorf("reading stat file: %w", err)
	}

	frame := &types.Frame{Columns: rdr.ColumnNames()}
	if len(series) == 0 {
		return frame, nil
	}

	cols := make([][]any, len(series))
	nrows := 0
	for i, ser := range series {
		vals, err := seriesValues(ser)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", frame.Columns[i], err)
		}
		cols[i] = vals
		if len(vals) > nrows {
			nrows = len(vals)
		}
	}

	for r := 0; r < nrows; r++ {
		row := make([]any, len(cols))
		for c := range cols {
			if r < len(cols[c]) {
				row[c] = cols[c][r]
			}
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame, nil
}

// seriesValues extracts a series as generic cells, nil where the missing
// mask is set.
func seriesValues(ser *datareader.Series) ([]any, error) {
	if vals, miss, err := ser.AsStringSlice(); err == nil {
		return maskedCells(vals, miss), nil
	}
	vals, miss, err := ser.AsFloat64Slice()
	if err != nil {
		return nil, err
	}
	return maskedCells(vals, miss), nil
}

func maskedCells[T any](vals []T, miss []bool) []any {
	cells := make([]any, len(vals))
	for i, v := range vals {
		if miss != nil && i < len(miss) && miss[i] {
			continue
		}
		cells[i] = v
	}
	return cells
}
