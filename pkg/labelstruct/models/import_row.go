package models

// DateLayout is the calendar date format used by rows and labels.
const DateLayout = "2006-01-02"

// MaxQuantity caps the number of labels one row or form may expand into.
const MaxQuantity = 10000

// RawImportRow is one candidate label group read from a sheet row, prior to
// user confirmation.
type RawImportRow struct {
	// Date is the reference date (YYYY-MM-DD).
	Date string `json:"date"`
	// LabelID is the starting label number, or an AUTO-n placeholder.
	LabelID string `json:"label_id"`
	// ProjectName is the sheet-wide project name.
	ProjectName string `json:"project_name"`
	// LotCode is the serial/lot code, read or synthesized.
	LotCode string `json:"lot_code"`
	// Dimension is thickness and width joined by "x".
	Dimension string `json:"dimension"`
	// Weight is the aggregate weight of the group, rounded.
	Weight int `json:"weight"`
	// Quantity is the number of labels in the group, in 1..MaxQuantity.
	Quantity int `json:"quantity"`
	// SourceRow is the 1-based sheet row the group came from (0 for the fallback row).
	SourceRow int `json:"source_row,omitempty"`
}
