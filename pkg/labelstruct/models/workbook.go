package models

// ImportResult is the outcome of reading a workbook into raw import rows.
// Rows is never empty: when extraction fails or finds nothing it holds the
// fallback row and Warning explains why.
type ImportResult struct {
	// SessionID identifies the import session when the result is cached for generation.
	SessionID string `json:"session_id,omitempty"`
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetName is the sheet the rows were read from.
	SheetName string `json:"sheet_name,omitempty"`
	// UsedRange is the range holding the sheet's data, e.g. "C5:W19".
	UsedRange string `json:"used_range,omitempty"`
	// Rows contains the extracted rows.
	Rows []RawImportRow `json:"rows"`
	// Fallback is true when Rows holds the fallback row instead of sheet data.
	Fallback bool `json:"fallback"`
	// Warning describes why the fallback row was used.
	Warning string `json:"warning,omitempty"`
	// Err is the underlying cause behind Warning.
	Err error `json:"-"`
}
