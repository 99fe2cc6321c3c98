package parser

import (
	"math"
	"time"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// serialEpoch is the day serial 2 maps to. Serials count from 1900-01-01 as
// day 1 and include the nonexistent 1900-02-29, hence the 2-day correction.
var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// textDateLayouts are accepted for reference dates typed as text.
var textDateLayouts = []string{models.DateLayout, "02.01.2006"}

// SerialToTime converts a spreadsheet day serial to a UTC time.
func SerialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	frac := serial - days
	t := serialEpoch.AddDate(0, 0, int(days)-2)
	return t.Add(time.Duration(frac * float64(24*time.Hour)))
}

// ResolveDate turns the reference date cell into a YYYY-MM-DD string.
// Native dates are used as-is, numbers are read as day serials, and anything
// unreadable resolves to now.
func ResolveDate(cell models.Cell, ok bool, now time.Time) string {
	if !ok || !cell.Present() {
		return now.Format(models.DateLayout)
	}

	switch cell.Kind {
	case models.CellDate:
		return cell.Time.Format(models.DateLayout)
	case models.CellNumber:
		if math.IsNaN(cell.Number) || math.IsInf(cell.Number, 0) {
			break
		}
		return SerialToTime(cell.Number).Format(models.DateLayout)
	case models.CellText:
		for _, layout := range textDateLayouts {
			if t, err := time.Parse(layout, cell.String()); err == nil {
				return t.Format(models.DateLayout)
			}
		}
	}

	return now.Format(models.DateLayout)
}
