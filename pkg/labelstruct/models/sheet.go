package models

// Sheet is a sparse grid of typed cells belonging to one worksheet.
type Sheet struct {
	// Name is the worksheet name.
	Name  string
	cells map[CellRef]Cell
}

// NewSheet creates an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name, cells: make(map[CellRef]Cell)}
}

// Set stores a cell at the given 0-based coordinates.
func (s *Sheet) Set(row, col int, c Cell) {
	s.cells[CellRef{Row: row, Col: col}] = c
}

// Cell returns the cell at the given 0-based coordinates and whether it exists.
func (s *Sheet) Cell(row, col int) (Cell, bool) {
	c, ok := s.cells[CellRef{Row: row, Col: col}]
	return c, ok
}

// Len returns the number of non-absent cells.
func (s *Sheet) Len() int {
	return len(s.cells)
}

// Bounds returns the smallest rectangle holding every cell, as 0-based
// inclusive corners. ok is false for an empty sheet.
func (s *Sheet) Bounds() (minRef, maxRef CellRef, ok bool) {
	for ref := range s.cells {
		if !ok {
			minRef, maxRef, ok = ref, ref, true
			continue
		}
		minRef.Row = min(minRef.Row, ref.Row)
		minRef.Col = min(minRef.Col, ref.Col)
		maxRef.Row = max(maxRef.Row, ref.Row)
		maxRef.Col = max(maxRef.Col, ref.Col)
	}
	return minRef, maxRef, ok
}
