package record

import (
	"kwmap/internal/sheet"
)

// Normalize converts a raw grid into records of schema s.
//
// The header row selects which columns are read; unknown headers are
// ignored. Every data row must yield at least one field and the required
// field, and every present cell must match its field's kind. The first
// failing row aborts the whole conversion and no records are returned.
// Duplicate keys are kept in sheet order.
func Normalize[T any](g sheet.Grid, s Schema[T]) ([]T, error) {
	if !sheet.IsPrimitiveGrid(g) {
		verr := &ValidationError{Schema: s.Name, Reason: ReasonMalformedFile, Row: -1, Column: -1}
		if r, c, ok := sheet.FirstNonPrimitive(g); ok {
			verr.Row, verr.Column, verr.Value = r, c, g[r][c].Raw
		}
		return nil, verr
	}

	if s.HeaderRow >= len(g) {
		return nil, &ValidationError{Schema: s.Name, Reason: ReasonMissingHeader, Row: s.HeaderRow, Column: -1}
	}
	cols := s.columns(g[s.HeaderRow])

	out := make([]T, 0, max(len(g)-s.DataStart, 0))
	for r := s.DataStart; r < len(g); r++ {
		rec, err := s.normalizeRow(g[r], r, cols)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s Schema[T]) normalizeRow(row sheet.Row, r int, cols []column) (T, error) {
	var rec T
	populated := 0
	required := ""

	for _, col := range cols {
		if col.index >= len(row) {
			continue
		}
		c := row[col.index]
		if c.IsEmpty() {
			continue
		}

		f := s.Fields[col.field]
		if !f.Kind.Accepts(c) {
			return rec, &ValidationError{
				Schema: s.Name,
				Reason: ReasonTypeMismatch,
				Row:    r,
				Column: col.index,
				Field:  f.Name,
				Value:  c.Text(),
				Want:   f.Kind,
			}
		}

		f.set(&rec, c)
		populated++
		if f.Name == s.Required {
			required = c.Str
		}
	}

	if populated == 0 {
		return rec, &ValidationError{Schema: s.Name, Reason: ReasonEmptyRow, Row: r, Column: -1}
	}
	if required == "" {
		return rec, &ValidationError{Schema: s.Name, Reason: ReasonMissingRequired, Row: r, Column: -1, Field: s.Required}
	}

	*s.key(&rec) = required
	return rec, nil
}
