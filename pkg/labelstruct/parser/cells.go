package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
	"github.com/xuri/excelize/v2"
)

// nativeDateLayouts are the ISO 8601 forms excelize returns for t="d" cells.
var nativeDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	models.DateLayout,
}

// ReadSheet reads every non-empty cell of a sheet into a typed grid.
// Values are read raw so that dates formatted in the workbook keep their
// serial number.
func ReadSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := models.NewSheet(sheetName)
	for rowIdx, row := range rows {
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}

			if cell, ok := parseCell(cellType, raw); ok {
				sheet.Set(rowIdx, colIdx, cell)
			}
		}
	}

	return sheet, nil
}

// parseCell converts a raw cell string according to its stored type.
// Error cells are dropped.
func parseCell(cellType excelize.CellType, raw string) (models.Cell, bool) {
	switch cellType {
	case excelize.CellTypeError:
		return models.Cell{}, false
	case excelize.CellTypeBool:
		return models.BoolCell(raw == "1" || strings.EqualFold(raw, "true")), true
	case excelize.CellTypeDate:
		for _, layout := range nativeDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return models.DateCell(t), true
			}
		}
		return models.TextCell(raw), true
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.TextCell(raw), true
	default:
		return parseValue(raw), true
	}
}

// parseValue attempts to parse a string value as a number.
// Returns a number cell when it parses, otherwise a text cell.
func parseValue(s string) models.Cell {
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return models.NumberCell(f)
	}
	return models.TextCell(s)
}
