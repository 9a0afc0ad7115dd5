package sheet

// IsPrimitive reports whether c is a string, a number, or blank.
func IsPrimitive(c Cell) bool {
	switch c.Kind {
	case CellEmpty, CellString, CellNumber:
		return true
	default:
		return false
	}
}

// IsPrimitiveGrid reports whether every cell of g is primitive.
// A nil grid is not a grid.
func IsPrimitiveGrid(g Grid) bool {
	if g == nil {
		return false
	}
	for _, row := range g {
		for _, c := range row {
			if !IsPrimitive(c) {
				return false
			}
		}
	}
	return true
}

// FirstNonPrimitive returns the position of the first non-primitive cell.
// ok is false when the grid is entirely primitive.
func FirstNonPrimitive(g Grid) (row, col int, ok bool) {
	for r, cells := range g {
		for c, cell := range cells {
			if !IsPrimitive(cell) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
