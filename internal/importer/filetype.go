package importer

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// XLSXMime is the only accepted upload type.
const XLSXMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CheckReader detects the MIME type of r from its content and rejects
// anything but an .xlsx workbook. name is only used in the error.
func CheckReader(name string, r io.Reader) error {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return fmt.Errorf("detect file type: %w", err)
	}
	if !mt.Is(XLSXMime) {
		return &FileTypeError{Path: name, MIME: mt.String()}
	}
	return nil
}
