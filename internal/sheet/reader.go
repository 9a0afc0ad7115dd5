package sheet

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Read decodes the first worksheet of the workbook in r.
func Read(r io.Reader) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return readSheet(f, sheets[0])
}

// ReadFile decodes the first worksheet of the workbook at path.
func ReadFile(path string) (Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

func readSheet(f *excelize.File, name string) (Grid, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	grid := make(Grid, len(rows))
	for r, values := range rows {
		row := make(Row, len(values))
		for c, raw := range values {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(name, axis)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", axis, err)
			}
			row[c] = decodeCell(typ, raw)
		}
		grid[r] = row
	}
	return grid, nil
}

// decodeCell maps an excelize cell type and raw value onto a Cell.
// Cells without an explicit type attribute are numeric in OOXML.
func decodeCell(typ excelize.CellType, raw string) Cell {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return Cell{Kind: CellString, Str: raw, Raw: raw}
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeFormula:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Cell{Kind: CellNumber, Num: f, Raw: raw}
		}
		return Cell{Kind: CellString, Str: raw, Raw: raw}
	default:
		return Cell{Kind: CellOther, Raw: raw}
	}
}
