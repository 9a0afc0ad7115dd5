// Package record turns raw spreadsheet grids into typed product and keyword
// records using a static registry of fields per sheet layout.
package record

import (
	"fmt"
	"strings"

	"kwmap/internal/sheet"
)

// Field describes one column a schema understands. Exactly one of str/num is
// set, matching Kind.
type Field[T any] struct {
	Name    string
	Label   string   // canonical header label
	Aliases []string // alternative header labels
	Kind    FieldKind

	str func(*T) *string
	num func(*T) *float64
}

// StringField declares a string-valued field stored at ref.
func StringField[T any](name, label string, ref func(*T) *string, aliases ...string) Field[T] {
	return Field[T]{Name: name, Label: label, Aliases: aliases, Kind: KindString, str: ref}
}

// NumberField declares a numeric field stored at ref.
func NumberField[T any](name, label string, ref func(*T) *float64, aliases ...string) Field[T] {
	return Field[T]{Name: name, Label: label, Aliases: aliases, Kind: KindNumber, num: ref}
}

func (f Field[T]) set(rec *T, c sheet.Cell) {
	switch f.Kind {
	case KindString:
		*f.str(rec) = c.Str
	case KindNumber:
		*f.num(rec) = c.Num
	}
}

// Get returns the field value of rec as a cell.
func (f Field[T]) Get(rec T) sheet.Cell {
	switch f.Kind {
	case KindString:
		return sheet.String(*f.str(&rec))
	case KindNumber:
		return sheet.Number(*f.num(&rec))
	default:
		return sheet.Cell{}
	}
}

// Schema is the fixed layout of one sheet type.
type Schema[T any] struct {
	Name      string
	HeaderRow int // zero-based index of the category row
	DataStart int // zero-based index of the first data row
	Required  string
	Fields    []Field[T]

	key func(*T) *string
}

func newSchema[T any](name string, header, data int, required string, key func(*T) *string, fields ...Field[T]) Schema[T] {
	s := Schema[T]{
		Name:      name,
		HeaderRow: header,
		DataStart: data,
		Required:  required,
		Fields:    fields,
		key:       key,
	}
	if f, ok := s.Field(required); !ok || f.Kind != KindString {
		panic(fmt.Sprintf("record: schema %s: required field %q must be a declared string field", name, required))
	}
	return s
}

// WithRows returns a copy of s using the given header and data row indexes.
func (s Schema[T]) WithRows(header, data int) Schema[T] {
	s.HeaderRow = header
	s.DataStart = data
	return s
}

// Field looks up a field by name.
func (s Schema[T]) Field(name string) (Field[T], bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Labels returns the {field name → canonical label} dictionary.
func (s Schema[T]) Labels() map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = f.Label
	}
	return out
}

// headerIndex maps every accepted header label (canonical and aliases) to a
// field position in s.Fields.
func (s Schema[T]) headerIndex() map[string]int {
	byName := make(map[string]int, len(s.Fields))
	for i, f := range s.Fields {
		byName[f.Name] = i
	}

	out := make(map[string]int, len(s.Fields)*2)
	for label, name := range ReverseLabels(s.Labels()) {
		out[label] = byName[name]
	}
	for i, f := range s.Fields {
		for _, alias := range f.Aliases {
			if _, taken := out[alias]; !taken {
				out[alias] = i
			}
		}
	}
	return out
}

// column pairs a sheet column with the schema field it populates.
type column struct {
	index int
	field int
}

// columns resolves the header row to known fields; unknown headers are dropped.
func (s Schema[T]) columns(header sheet.Row) []column {
	index := s.headerIndex()
	cols := make([]column, 0, len(header))
	for i, c := range header {
		if c.IsEmpty() {
			continue
		}
		if f, ok := index[strings.TrimSpace(c.Text())]; ok {
			cols = append(cols, column{index: i, field: f})
		}
	}
	return cols
}

// HeaderCells returns the canonical labels in field order.
func (s Schema[T]) HeaderCells() sheet.Row {
	row := make(sheet.Row, len(s.Fields))
	for i, f := range s.Fields {
		row[i] = sheet.String(f.Label)
	}
	return row
}

// RowCells renders rec in field order.
func (s Schema[T]) RowCells(rec T) sheet.Row {
	row := make(sheet.Row, len(s.Fields))
	for i, f := range s.Fields {
		row[i] = f.Get(rec)
	}
	return row
}

// Grid lays records out in the schema's sheet layout: the header row at
// HeaderRow and records from DataStart on. Rows before them are blank.
func (s Schema[T]) Grid(records []T) sheet.Grid {
	size := s.DataStart + len(records)
	if size <= s.HeaderRow {
		size = s.HeaderRow + 1
	}
	g := make(sheet.Grid, size)
	g[s.HeaderRow] = s.HeaderCells()
	for i, rec := range records {
		g[s.DataStart+i] = s.RowCells(rec)
	}
	return g
}

// ReverseLabels inverts a {field → label} dictionary into {label → field}.
func ReverseLabels(labels map[string]string) map[string]string {
	out := make(map[string]string, len(labels))
	for field, label := range labels {
		out[label] = field
	}
	return out
}
