package labelstruct

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/parser"
	"github.com/xuri/excelize/v2"
)

// Fallback row values, returned whenever extraction cannot produce rows so
// the user is never blocked on a bad file.
const (
	FallbackLabelID     = "A108"
	FallbackProjectName = "TARIMSAL"
	FallbackLotCode     = "25/627"
	FallbackDimension   = "3x171"
	FallbackWeight      = 6005
	FallbackQuantity    = 7
)

// FallbackRow returns the fixed row used when extraction yields nothing.
func FallbackRow(date string) models.RawImportRow {
	return models.RawImportRow{
		Date:        date,
		LabelID:     FallbackLabelID,
		ProjectName: FallbackProjectName,
		LotCode:     FallbackLotCode,
		Dimension:   FallbackDimension,
		Weight:      FallbackWeight,
		Quantity:    FallbackQuantity,
	}
}

// Extract reads import rows from an xlsx file. It never fails: any error is
// reported through the result's Warning together with the fallback row.
func Extract(path string, opts Options) *models.ImportResult {
	bookName := filepath.Base(path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fallback(bookName, "", NewExtractionError("", "open", err), opts)
	}
	defer f.Close()

	return ExtractFile(f, bookName, opts)
}

// ExtractReader reads import rows from an xlsx stream, such as an upload.
func ExtractReader(r io.Reader, bookName string, opts Options) *models.ImportResult {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return fallback(bookName, "", NewExtractionError("", "open", err), opts)
	}
	defer f.Close()

	return ExtractFile(f, bookName, opts)
}

// ExtractFile reads import rows from an open workbook.
func ExtractFile(f *excelize.File, bookName string, opts Options) (result *models.ImportResult) {
	log := opts.logger().With("book", bookName)

	sheetName, matched := parser.SelectSheet(f.GetSheetList(), opts.markers())
	if sheetName == "" {
		return fallback(bookName, "", NewExtractionError("", "read", ErrSheetNotFound), opts)
	}
	if !matched {
		log.Info("no marked sheet, using first sheet", "sheet", sheetName, "error", ErrSheetNotFound)
	}

	// A malformed sheet must not take the caller down with it.
	defer func() {
		if r := recover(); r != nil {
			result = fallback(bookName, sheetName, NewExtractionError(sheetName, "scan", fmt.Errorf("panic: %v", r)), opts)
		}
	}()

	sheet, err := parser.ReadSheet(f, sheetName)
	if err != nil {
		return fallback(bookName, sheetName, NewExtractionError(sheetName, "read", err), opts)
	}

	now := opts.now()
	layout := opts.layout()
	rows, err := parser.ScanRows(sheet, layout, now)
	if err != nil {
		return fallback(bookName, sheetName, NewExtractionError(sheetName, "scan", err), opts)
	}

	if len(rows) == 0 {
		date := layout.ReferenceDate(sheet, now)
		res := fallbackResult(bookName, sheetName, date, NewExtractionError(sheetName, "scan", ErrNoRows))
		res.UsedRange = parser.UsedRange(sheet)
		log.Warn("extraction produced no rows, using fallback row", "sheet", sheetName, "error", res.Err)
		return res
	}

	usedRange := parser.UsedRange(sheet)
	log.Debug("extracted import rows", "sheet", sheetName, "range", usedRange, "rows", len(rows))
	return &models.ImportResult{
		BookName:  bookName,
		SheetName: sheetName,
		UsedRange: usedRange,
		Rows:      rows,
	}
}

// fallback builds a fallback result dated today and logs the cause.
func fallback(bookName, sheetName string, err error, opts Options) *models.ImportResult {
	date := opts.now().Format(models.DateLayout)
	result := fallbackResult(bookName, sheetName, date, err)
	opts.logger().Warn("extraction failed, using fallback row", "book", bookName, "sheet", sheetName, "error", err)
	return result
}

func fallbackResult(bookName, sheetName, date string, err error) *models.ImportResult {
	return &models.ImportResult{
		BookName:  bookName,
		SheetName: sheetName,
		Rows:      []models.RawImportRow{FallbackRow(date)},
		Fallback:  true,
		Warning:   err.Error(),
		Err:       err,
	}
}
