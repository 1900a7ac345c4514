// Package export writes classification results as xlsx spreadsheets and
// packages them into a downloadable zip archive.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Abdeldjalil-bch/anomal/internal/dataset"
)

// WriteXLSX writes the table as a single-sheet workbook: one header row
// followed by the data rows, all original columns, no index column.
func WriteXLSX(w io.Writer, t *dataset.Table, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for c, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			if v.IsMissing() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// cellValue maps a typed cell to the native Go value excelize expects, so
// numbers and booleans keep their type in the spreadsheet.
func cellValue(v dataset.Value) interface{} {
	switch v.Kind {
	case dataset.KindNumber:
		return v.Num
	case dataset.KindBool:
		return v.Bool
	default:
		return v.Str
	}
}
