package export

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders wb as an .xlsx document.
func WriteXLSX(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return fmt.Errorf("sheet %q row %d: %w", sheet.Name, r+1, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile writes wb to path.
func WriteFile(path string, wb Workbook) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteXLSX(out, wb); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
