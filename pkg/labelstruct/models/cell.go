package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind identifies the type of value held by a Cell.
type CellKind int

const (
	// CellNumber holds a numeric value, including spreadsheet date serials.
	CellNumber CellKind = iota + 1
	// CellText holds a string value.
	CellText
	// CellBool holds a boolean value.
	CellBool
	// CellDate holds a native date value.
	CellDate
)

// CellRef addresses a cell by 0-based row and column index.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is a single typed cell value. Absent cells are not represented.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Bool   bool
	Time   time.Time
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// DateCell returns a native date cell.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// Float returns the numeric value of the cell. Text cells holding a number
// are converted; other kinds and non-finite values report false.
func (c Cell) Float() (float64, bool) {
	var f float64
	switch c.Kind {
	case CellNumber:
		f = c.Number
	case CellText:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return 0, false
		}
		f = v
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Present reports whether the cell carries a usable value: non-zero numbers,
// non-blank text, true booleans and any date.
func (c Cell) Present() bool {
	switch c.Kind {
	case CellNumber:
		return c.Number != 0
	case CellText:
		return strings.TrimSpace(c.Text) != ""
	case CellBool:
		return c.Bool
	case CellDate:
		return !c.Time.IsZero()
	default:
		return false
	}
}

// String renders the cell value the way it is shown in a label field.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return strings.TrimSpace(c.Text)
	case CellBool:
		return strings.ToUpper(strconv.FormatBool(c.Bool))
	case CellDate:
		return c.Time.Format(DateLayout)
	default:
		return ""
	}
}
