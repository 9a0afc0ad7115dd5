package importer

import (
	"errors"
	"fmt"

	"kwmap/internal/mapping"
	"kwmap/internal/record"
)

// FileTypeError reports a file that is not an Office Open XML spreadsheet.
type FileTypeError struct {
	Path string
	MIME string // detected type
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("%s: unsupported file type %s", e.Path, e.MIME)
}

// ParseError reports a workbook that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot decode spreadsheet: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UserMessage returns the short text shown to the user for err. Details
// stay in the logs.
func UserMessage(err error) string {
	var (
		typeErr  *FileTypeError
		parseErr *ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &typeErr):
		return "only .xlsx spreadsheets can be imported"
	case errors.Is(err, record.ErrInvalidFile):
		return "invalid file"
	case errors.As(err, &parseErr):
		return "the file could not be read as a spreadsheet"
	case errors.Is(err, mapping.ErrNoProductSelected):
		return "select a product first"
	default:
		return err.Error()
	}
}
