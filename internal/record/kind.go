package record

import "kwmap/internal/sheet"

//go:generate stringer -type=FieldKind -trimprefix=Kind -output=kind_string.go

// FieldKind is the declared value type of a record field.
type FieldKind int

const (
	_ FieldKind = iota // zero value is invalid

	KindString
	KindNumber
)

// Accepts reports whether a decoded cell may populate a field of this kind.
func (k FieldKind) Accepts(c sheet.Cell) bool {
	switch k {
	case KindString:
		return c.Kind == sheet.CellString
	case KindNumber:
		return c.Kind == sheet.CellNumber
	default:
		return false
	}
}
