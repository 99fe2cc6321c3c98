package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
	"github.com/xuri/excelize/v2"
)

// ParseCellRef parses an A1-style reference such as C5 or $V$7 into 0-based
// coordinates.
func ParseCellRef(ref string) (models.CellRef, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return models.CellRef{}, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}

	return models.CellRef{Row: row - 1, Col: col - 1}, nil
}

// ParseColumn parses a column name such as W into a 0-based column index.
func ParseColumn(name string) (int, error) {
	col, err := excelize.ColumnNameToNumber(strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", name, err)
	}
	return col - 1, nil
}

// ParseColumns parses a list of column names into 0-based indexes.
func ParseColumns(names ...string) ([]int, error) {
	cols := make([]int, 0, len(names))
	for _, name := range names {
		col, err := ParseColumn(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// FormatCellRef renders 0-based coordinates as an A1-style reference.
func FormatCellRef(ref models.CellRef) string {
	name, err := excelize.CoordinatesToCellName(ref.Col+1, ref.Row+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d", ref.Row+1, ref.Col+1)
	}
	return name
}
