package parser

import (
	"fmt"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// UsedRange returns the range holding all of a sheet's data (e.g. "C5:W9"),
// or "" for an empty sheet.
func UsedRange(s *models.Sheet) string {
	minRef, maxRef, ok := s.Bounds()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%s", FormatCellRef(minRef), FormatCellRef(maxRef))
}
