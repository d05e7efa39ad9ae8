package codec

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fathomdata/larder/pkg/types"
)

// parseExcel reads the first sheet of an xlsx workbook into a Frame. The
// first row is the header; cells come back as strings.
func parseExcel(data []byte, _ types.CatalogEntry) (any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &types.Frame{}, nil
	}

	frame := &types.Frame{Columns: rows[0]}
	width := len(rows[0])
	for _, rec := range rows[1:] {
		// Trailing empty cells are dropped by the reader; pad to the header.
		row := make([]any, width)
		for i := 0; i < width; i++ {
			if i < len(rec) {
				row[i] = rec[i]
			} else {
				row[i] = ""
			}
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame, nil
}

// writeExcel serializes a Frame as a single-sheet xlsx workbook.
func writeExcel(value any, _ types.CatalogEntry) ([]byte, error) {
	frame, ok := value.(*types.Frame)
	if !ok {
		return nil, fmt.Errorf("excel writer needs a *types.Frame, got %T", value)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, col := range frame.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}
	for r, row := range frame.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
