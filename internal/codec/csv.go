package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/fathomdata/larder/pkg/types"
)

// delimiterFor returns the entry's delimiter, defaulting to comma.
func delimiterFor(entry types.CatalogEntry) rune {
	if entry.Delimiter != 0 {
		return entry.Delimiter
	}
	return ','
}

// parseCSV reads delimited text into a Frame. The first record is the
// header; all cells are strings.
func parseCSV(data []byte, entry types.CatalogEntry) (any, error) {
	rd := csv.NewReader(bytes.NewReader(data))
	rd.Comma = delimiterFor(entry)
	rd.FieldsPerRecord = -1

	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return &types.Frame{}, nil
	}

	frame := &types.Frame{Columns: records[0]}
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, cell := range rec {
			row[i] = cell
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame, nil
}

// writeCSV serializes a Frame as delimited text, header first.
func writeCSV(value any, entry types.CatalogEntry) ([]byte, error) {
	frame, ok := value.(*types.Frame)
	if !ok {
		return nil, fmt.Errorf("csv writer needs a *types.Frame, got %T", value)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiterFor(entry)

	if err := w.Write(frame.Columns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range frame.Rows {
		rec := make([]string, len(row))
		for i, cell := range row {
			rec[i] = fmt.Sprint(cell)
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
