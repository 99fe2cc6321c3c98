package generator

import (
	"errors"
	"fmt"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// ErrEmptySelection indicates Generate was called with no rows selected.
var ErrEmptySelection = errors.New("no rows selected")

// ErrRowOutOfRange indicates a row index outside the batch.
var ErrRowOutOfRange = errors.New("row index out of range")

// ErrQuantityTooLarge indicates a quantity above models.MaxQuantity.
var ErrQuantityTooLarge = fmt.Errorf("quantity exceeds %d", models.MaxQuantity)

// FormatError reports a starting value that is not letters followed by digits.
type FormatError struct {
	// Identifier is the offending starting value.
	Identifier string
	// Row is the batch index of the offending row, or -1 for a form.
	Row int
	// Reason overrides the default explanation.
	Reason string
}

func (e *FormatError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "expected letters followed by digits, e.g. A108"
	}
	if e.Row >= 0 {
		return fmt.Sprintf("row %d: invalid starting value %q (%s)", e.Row, e.Identifier, reason)
	}
	return fmt.Sprintf("invalid starting value %q (%s)", e.Identifier, reason)
}

// RowError reports a selected row whose starting value parsed but whose
// labels could not be generated or were rejected by a LabelCheck.
type RowError struct {
	Row     int
	LabelID string
	Err     error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.LabelID, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
