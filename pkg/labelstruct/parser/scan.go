package parser

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// DefaultProjectName is used when the project name anchor is empty.
const DefaultProjectName = "Proje Adı"

// maxWeight keeps rounded weights exactly representable as int.
const maxWeight = 1 << 53

// ScanRows reads raw import rows from a sheet using the given layout.
//
// The scan stops at the first row where both the label id and the lot code
// are empty. Each group slot i yields one row, with short groups repeating
// their first value; slots whose quantity is not in 1..MaxQuantity are
// dropped, as are slots with an absurd weight.
func ScanRows(s *models.Sheet, layout Layout, now time.Time) ([]models.RawImportRow, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	projectName := layout.ProjectName(s)
	date := layout.ReferenceDate(s, now)

	var rows []models.RawImportRow
	for r := layout.FirstRow; r < layout.EndRow; r++ {
		labelID, hasLabelID := layout.scalar(s, r, FieldLabelID)
		lotCode, hasLotCode := layout.scalar(s, r, FieldLotCode)
		if !hasLabelID && !hasLotCode {
			break
		}
		thickness, _ := layout.scalar(s, r, FieldThickness)

		dimensions := layout.group(s, r, FieldDimension)
		weights := layout.group(s, r, FieldWeight)
		quantities := layout.group(s, r, FieldQuantity)

		n := max(len(dimensions), len(weights), len(quantities))
		for i := range n {
			quantity := math.Trunc(pick(quantities, i))
			if quantity <= 0 || quantity > models.MaxQuantity {
				continue
			}
			weight := math.Round(pick(weights, i))
			if weight > maxWeight {
				continue
			}

			row := models.RawImportRow{
				Date:        date,
				ProjectName: projectName,
				Dimension:   thickness.String() + "x" + formatNumber(dimensions, i),
				Weight:      int(weight),
				Quantity:    int(quantity),
				SourceRow:   r + 1,
			}
			if hasLabelID {
				row.LabelID = labelID.String()
			} else {
				row.LabelID = fmt.Sprintf("AUTO-%d", len(rows)+1)
			}
			if hasLotCode {
				row.LotCode = lotCode.String()
			} else {
				row.LotCode = SynthesizedLotCode(r)
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// ProjectName returns the sheet's project name, or DefaultProjectName.
func (l Layout) ProjectName(s *models.Sheet) string {
	if c, ok := l.anchor(s, FieldProjectName); ok && c.Present() {
		return c.String()
	}
	return DefaultProjectName
}

// ReferenceDate returns the sheet's reference date as YYYY-MM-DD.
func (l Layout) ReferenceDate(s *models.Sheet, now time.Time) string {
	c, ok := l.anchor(s, FieldReferenceDate)
	return ResolveDate(c, ok, now)
}

// SynthesizedLotCode returns the lot code used for a row without one.
func SynthesizedLotCode(rowIndex int) string {
	return "25/" + strconv.Itoa(600+rowIndex)
}

// pick returns values[i], or values[0] when the group is shorter than i.
func pick(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	if len(values) > 0 {
		return values[0]
	}
	return 0
}

func formatNumber(values []float64, i int) string {
	if len(values) == 0 {
		return ""
	}
	return strconv.FormatFloat(pick(values, i), 'f', -1, 64)
}
