// Package generator expands import rows into sequentially numbered labels.
package generator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// DefaultMaterial is used when a row or form has no material.
const DefaultMaterial = "TARIMSAL"

var identifierPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// ValidIdentifier reports whether s is letters followed by digits.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// ParseIdentifier splits a starting value such as A108 into its prefix and number.
func ParseIdentifier(s string) (string, int, error) {
	m := identifierPattern.FindStringSubmatch(s)
	if m == nil {
		return "", 0, &FormatError{Identifier: s, Row: -1}
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, &FormatError{Identifier: s, Row: -1, Reason: "number too large"}
	}
	return m[1], n, nil
}

// Form holds the values a label group is generated from.
type Form struct {
	StartingValue   string `json:"starting_value"`
	Quantity        int    `json:"quantity"`
	AggregateWeight int    `json:"aggregate_weight"`
	Material        string `json:"material"`
	Dimension       string `json:"dimension"`
	LotCode         string `json:"lot_code"`
	Date            string `json:"date"`
}

// FormFromRow fills a form from an import row.
func FormFromRow(row models.RawImportRow) Form {
	return Form{
		StartingValue:   row.LabelID,
		Quantity:        row.Quantity,
		AggregateWeight: row.Weight,
		Material:        row.ProjectName,
		Dimension:       row.Dimension,
		LotCode:         row.LotCode,
		Date:            row.Date,
	}
}

// Expand generates Quantity labels numbered upward from StartingValue.
// The aggregate weight is split evenly and rounded; the remainder is dropped.
// Quantities above models.MaxQuantity fail with ErrQuantityTooLarge.
func Expand(form Form) ([]models.LabelData, error) {
	startingValue := strings.TrimSpace(form.StartingValue)
	prefix, start, err := ParseIdentifier(startingValue)
	if err != nil {
		return nil, err
	}
	if form.Quantity <= 0 {
		return nil, nil
	}
	if form.Quantity > models.MaxQuantity {
		return nil, fmt.Errorf("%w: %d", ErrQuantityTooLarge, form.Quantity)
	}
	if start > math.MaxInt-(form.Quantity-1) {
		return nil, &FormatError{Identifier: startingValue, Row: -1, Reason: "numbering would overflow"}
	}

	material := strings.TrimSpace(form.Material)
	if material == "" {
		material = DefaultMaterial
	}
	weight := int(math.Round(float64(form.AggregateWeight) / float64(form.Quantity)))

	labels := make([]models.LabelData, 0, form.Quantity)
	for k := range form.Quantity {
		labels = append(labels, models.LabelData{
			LabelNumber: prefix + strconv.Itoa(start+k),
			Material:    material,
			Dimension:   form.Dimension,
			LotCode:     form.LotCode,
			Weight:      weight,
			Date:        form.Date,
		})
	}
	return labels, nil
}

// ExpandRow generates the labels of one import row, with an optional edit
// applied to a copy of the row first.
func ExpandRow(row models.RawImportRow, edit *RowEdit) ([]models.LabelData, error) {
	if edit != nil {
		row = edit.Apply(row)
	}
	return Expand(FormFromRow(row))
}
