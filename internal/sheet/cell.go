// Package sheet reads and writes the first worksheet of an .xlsx workbook as a
// header-less grid of typed cells.
package sheet

import (
	"strconv"
)

// CellKind is the runtime type of a decoded cell.
type CellKind int

const (
	CellEmpty  CellKind = iota // No value (missing or blank cell)
	CellString                 // Shared, inline or formula string
	CellNumber                 // Numeric value
	CellOther                  // Boolean, date, error: not a primitive
)

// Cell is a single decoded spreadsheet value.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Raw  string // Raw text as stored in the sheet, kept for diagnostics
}

// String returns a string cell. The empty string yields an empty cell.
func String(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellString, Str: s, Raw: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{Kind: CellNumber, Num: f, Raw: FormatNumber(f)}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Text returns the string form of the cell value.
func (c Cell) Text() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return FormatNumber(c.Num)
	default:
		return c.Raw
	}
}

// Value returns the cell as a Go value suitable for excelize writers.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return c.Num
	case CellOther:
		return c.Raw
	default:
		return nil
	}
}

// FormatNumber renders f in the shortest decimal form that round-trips
// (1000, 11.11, 0.5).
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Row is one spreadsheet row. Trailing empty cells may be absent.
type Row []Cell

// Grid is a header-less sheet: Grid[0] is the first row of the sheet.
type Grid []Row

// At returns the cell at (row, col), or an empty cell when out of range.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) {
		return Cell{}
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}
