package parser

import (
	"fmt"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// Field names used by the cutting plans layout.
const (
	FieldProjectName   = "project_name"
	FieldReferenceDate = "reference_date"
	FieldLabelID       = "label_id"
	FieldLotCode       = "lot_code"
	FieldThickness     = "thickness"
	FieldDimension     = "dimension"
	FieldWeight        = "weight"
	FieldQuantity      = "quantity"
)

// Role tells the scanner how to read a row field.
type Role int

const (
	// RoleScalar reads a single cell as-is.
	RoleScalar Role = iota
	// RoleGroup reads parallel cells and keeps only values greater than zero.
	RoleGroup
)

// Field describes where a row field lives within each scanned row.
type Field struct {
	Role Role
	// Cols lists the 0-based columns; scalar fields use the first one.
	Cols []int
}

// Layout is the declarative cell map of an import sheet.
type Layout struct {
	// Anchors are fixed cells read once per sheet.
	Anchors map[string]models.CellRef
	// Fields are read from every scanned row.
	Fields map[string]Field
	// FirstRow is the 0-based row the scan starts at.
	FirstRow int
	// EndRow is the 0-based row the scan stops before.
	EndRow int
}

// DefaultLayout returns the cutting plans layout: project name in C5, date in
// V7, and data rows 8 through 20.
func DefaultLayout() Layout {
	return Layout{
		Anchors: map[string]models.CellRef{
			FieldProjectName:   mustRef("C5"),
			FieldReferenceDate: mustRef("V7"),
		},
		Fields: map[string]Field{
			FieldLabelID:   {Role: RoleScalar, Cols: mustCols("W")},
			FieldLotCode:   {Role: RoleScalar, Cols: mustCols("C")},
			FieldThickness: {Role: RoleScalar, Cols: mustCols("F")},
			FieldDimension: {Role: RoleGroup, Cols: mustCols("J", "M", "P")},
			FieldWeight:    {Role: RoleGroup, Cols: mustCols("K", "N", "Q")},
			FieldQuantity:  {Role: RoleGroup, Cols: mustCols("I", "L", "O")},
		},
		FirstRow: 7,
		EndRow:   20,
	}
}

// Validate checks that every field the scanner needs is declared with the
// right role.
func (l Layout) Validate() error {
	for _, name := range []string{FieldProjectName, FieldReferenceDate} {
		if _, ok := l.Anchors[name]; !ok {
			return fmt.Errorf("layout: missing anchor %q", name)
		}
	}

	roles := map[string]Role{
		FieldLabelID:   RoleScalar,
		FieldLotCode:   RoleScalar,
		FieldThickness: RoleScalar,
		FieldDimension: RoleGroup,
		FieldWeight:    RoleGroup,
		FieldQuantity:  RoleGroup,
	}
	for name, role := range roles {
		field, ok := l.Fields[name]
		if !ok {
			return fmt.Errorf("layout: missing field %q", name)
		}
		if field.Role != role {
			return fmt.Errorf("layout: field %q has wrong role", name)
		}
		if len(field.Cols) == 0 {
			return fmt.Errorf("layout: field %q has no columns", name)
		}
	}

	if l.FirstRow < 0 || l.EndRow < l.FirstRow {
		return fmt.Errorf("layout: invalid row range [%d, %d)", l.FirstRow, l.EndRow)
	}
	return nil
}

// anchor returns the cell at a named anchor.
func (l Layout) anchor(s *models.Sheet, name string) (models.Cell, bool) {
	ref := l.Anchors[name]
	return s.Cell(ref.Row, ref.Col)
}

// scalar returns the present cell of a scalar field in the given row.
func (l Layout) scalar(s *models.Sheet, row int, name string) (models.Cell, bool) {
	c, ok := s.Cell(row, l.Fields[name].Cols[0])
	if !ok || !c.Present() {
		return models.Cell{}, false
	}
	return c, true
}

// group returns the values of a group field in the given row that are
// numeric and greater than zero, in column order.
func (l Layout) group(s *models.Sheet, row int, name string) []float64 {
	var values []float64
	for _, col := range l.Fields[name].Cols {
		c, ok := s.Cell(row, col)
		if !ok {
			continue
		}
		if v, ok := c.Float(); ok && v > 0 {
			values = append(values, v)
		}
	}
	return values
}

func mustRef(ref string) models.CellRef {
	r, err := ParseCellRef(ref)
	if err != nil {
		panic(err)
	}
	return r
}

func mustCols(names ...string) []int {
	cols, err := ParseColumns(names...)
	if err != nil {
		panic(err)
	}
	return cols
}
