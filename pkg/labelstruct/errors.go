package labelstruct

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates no sheet name contained a marker. Extraction
// continues with the first sheet.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNoRows indicates the scan found no rows in the sheet.
var ErrNoRows = errors.New("no rows found in the expected cells")

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "open", "read", "scan"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
