package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name given to the single worksheet written by Write.
const DefaultSheetName = "Sheet1"

// Write encodes g as a single-sheet workbook. Empty cells are left unset.
func Write(w io.Writer, g Grid) error {
	f, err := build(g)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile encodes g to path, creating parent directories as needed.
func WriteFile(path string, g Grid) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := build(g)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func build(g Grid) (*excelize.File, error) {
	f := excelize.NewFile()
	for r, row := range g {
		for c, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(DefaultSheetName, axis, cell.Value()); err != nil {
				f.Close()
				return nil, fmt.Errorf("set %s: %w", axis, err)
			}
		}
	}
	return f, nil
}
