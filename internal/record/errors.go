package record

import (
	"errors"
	"fmt"
)

// ErrInvalidFile matches every ValidationError via errors.Is.
var ErrInvalidFile = errors.New("invalid file")

// Reason classifies a ValidationError.
type Reason int

const (
	ReasonMalformedFile   Reason = iota + 1 // grid is not a 2-D grid of primitives
	ReasonMissingHeader                     // header row index is past the end of the sheet
	ReasonTypeMismatch                      // cell type does not match the field kind
	ReasonEmptyRow                          // row populated no known field
	ReasonMissingRequired                   // required field absent
)

func (r Reason) String() string {
	switch r {
	case ReasonMalformedFile:
		return "malformed file"
	case ReasonMissingHeader:
		return "missing header row"
	case ReasonTypeMismatch:
		return "type mismatch"
	case ReasonEmptyRow:
		return "empty/malformed row"
	case ReasonMissingRequired:
		return "missing required field"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ValidationError reports why a grid could not be normalized.
// Row and Column are zero-based sheet coordinates; -1 when not applicable.
type ValidationError struct {
	Schema string
	Reason Reason
	Row    int
	Column int
	Field  string
	Value  string
	Want   FieldKind
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonTypeMismatch:
		return fmt.Sprintf("%s: row %d: invalid value type for %s (want %s): %q",
			e.Schema, e.Row+1, e.Field, e.Want, e.Value)
	case ReasonMissingRequired:
		return fmt.Sprintf("%s: row %d: missing required field %s", e.Schema, e.Row+1, e.Field)
	case ReasonEmptyRow:
		return fmt.Sprintf("%s: row %d: %s", e.Schema, e.Row+1, e.Reason)
	case ReasonMalformedFile:
		if e.Row >= 0 {
			return fmt.Sprintf("%s: %s: non-primitive cell at row %d column %d: %q",
				e.Schema, e.Reason, e.Row+1, e.Column+1, e.Value)
		}
		return fmt.Sprintf("%s: %s", e.Schema, e.Reason)
	default:
		return fmt.Sprintf("%s: %s (row %d)", e.Schema, e.Reason, e.Row+1)
	}
}

// Is makes errors.Is(err, ErrInvalidFile) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidFile
}
