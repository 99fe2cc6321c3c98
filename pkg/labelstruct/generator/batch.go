package generator

import (
	"errors"
	"slices"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// RowEdit revises fields of an import row before generation. Nil fields are
// left unchanged.
type RowEdit struct {
	LabelID     *string `json:"label_id,omitempty"`
	ProjectName *string `json:"project_name,omitempty"`
	LotCode     *string `json:"lot_code,omitempty"`
	Dimension   *string `json:"dimension,omitempty"`
	Weight      *int    `json:"weight,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// Apply returns a copy of row with the edit applied.
func (e RowEdit) Apply(row models.RawImportRow) models.RawImportRow {
	if e.LabelID != nil {
		row.LabelID = *e.LabelID
	}
	if e.ProjectName != nil {
		row.ProjectName = *e.ProjectName
	}
	if e.LotCode != nil {
		row.LotCode = *e.LotCode
	}
	if e.Dimension != nil {
		row.Dimension = *e.Dimension
	}
	if e.Weight != nil {
		row.Weight = *e.Weight
	}
	if e.Quantity != nil {
		row.Quantity = *e.Quantity
	}
	if e.Date != nil {
		row.Date = *e.Date
	}
	return row
}

// Batch holds private copies of extracted rows and the user's selection.
type Batch struct {
	rows     []models.RawImportRow
	selected []bool
}

// LabelCheck validates one generated label before its row is accepted.
type LabelCheck func(models.LabelData) error

// Output is the result of generating a batch.
type Output struct {
	Labels []models.LabelData `json:"labels"`
	// Skipped lists selected rows whose starting value was rejected.
	Skipped []*FormatError `json:"-"`
	// Rejected lists selected rows that failed expansion or a LabelCheck.
	Rejected []*RowError `json:"-"`
}

// Err returns the first row failure when no row produced labels, and nil
// otherwise.
func (o *Output) Err() error {
	if len(o.Labels) > 0 {
		return nil
	}
	if len(o.Skipped) > 0 {
		return o.Skipped[0]
	}
	if len(o.Rejected) > 0 {
		return o.Rejected[0]
	}
	return nil
}

// NewBatch copies rows into a batch with nothing selected.
func NewBatch(rows []models.RawImportRow) *Batch {
	return &Batch{
		rows:     slices.Clone(rows),
		selected: make([]bool, len(rows)),
	}
}

// Len returns the number of rows.
func (b *Batch) Len() int {
	return len(b.rows)
}

// Row returns the row at index i.
func (b *Batch) Row(i int) (models.RawImportRow, error) {
	if err := b.check(i); err != nil {
		return models.RawImportRow{}, err
	}
	return b.rows[i], nil
}

// Select marks rows as selected.
func (b *Batch) Select(indexes ...int) error {
	return b.mark(true, indexes)
}

// Deselect clears the selection of rows.
func (b *Batch) Deselect(indexes ...int) error {
	return b.mark(false, indexes)
}

// Toggle flips the selection of one row.
func (b *Batch) Toggle(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.selected[i] = !b.selected[i]
	return nil
}

// SelectAll selects every row, or clears the selection if all are selected.
func (b *Batch) SelectAll() {
	all := !slices.Contains(b.selected, false)
	for i := range b.selected {
		b.selected[i] = !all
	}
}

// Selected returns the selected row indexes in order.
func (b *Batch) Selected() []int {
	var out []int
	for i, ok := range b.selected {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// Edit applies an edit to row i only.
func (b *Batch) Edit(i int, edit RowEdit) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.rows[i] = edit.Apply(b.rows[i])
	return nil
}

// Generate expands every selected row in order. Each row numbers from its
// own starting value. A row with an invalid starting value is reported in
// Output.Skipped; a row that cannot be expanded, or any of whose labels fails
// a check, is reported in Output.Rejected. The other rows proceed.
func (b *Batch) Generate(checks ...LabelCheck) (*Output, error) {
	selected := b.Selected()
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	out := &Output{}
	for _, i := range selected {
		row := b.rows[i]
		labels, err := ExpandRow(row, nil)
		if err == nil {
			err = checkLabels(labels, checks)
		}
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				out.Skipped = append(out.Skipped, &FormatError{Identifier: fe.Identifier, Row: i, Reason: fe.Reason})
				continue
			}
			out.Rejected = append(out.Rejected, &RowError{Row: i, LabelID: row.LabelID, Err: err})
			continue
		}
		out.Labels = append(out.Labels, labels...)
	}
	return out, nil
}

func checkLabels(labels []models.LabelData, checks []LabelCheck) error {
	for _, check := range checks {
		for _, l := range labels {
			if err := check(l); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Batch) mark(v bool, indexes []int) error {
	for _, i := range indexes {
		if err := b.check(i); err != nil {
			return err
		}
	}
	for _, i := range indexes {
		b.selected[i] = v
	}
	return nil
}

func (b *Batch) check(i int) error {
	if i < 0 || i >= len(b.rows) {
		return ErrRowOutOfRange
	}
	return nil
}
