package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/labelstruct-go/internal/imports"
	"github.com/ukaji3/labelstruct-go/internal/store"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
	"github.com/xuri/excelize/v2"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(logger)
	opts := labelstruct.DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC) }
	return New(st, imports.NewCache(), opts, logger), st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func labelData(number string) models.LabelData {
	return models.LabelData{
		LabelNumber: number,
		Material:    "TARIMSAL",
		Dimension:   "3x171",
		LotCode:     "25/627",
		Weight:      858,
		Date:        "2025-10-16",
	}
}

func TestLabelsCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/labels", labelData("A108"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Label](t, rec)
	assert.Equal(t, 1, created.ID)

	update := labelData("A200")
	rec = doJSON(t, srv, http.MethodPut, "/api/labels/1", update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "A200", decode[models.Label](t, rec).LabelNumber)

	rec = doJSON(t, srv, http.MethodGet, "/api/labels?q=a2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Label](t, rec), 1)

	rec = doJSON(t, srv, http.MethodDelete, "/api/labels/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/labels/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/labels", nil)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateLabel_ValidationError(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/labels", labelData("108A"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[errorResponse](t, rec)
	assert.Equal(t, codeValidation, body.Code)
	assert.Contains(t, body.Details, "label_number")
}

func TestCreateLabel_BadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/labels", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkInsert(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/labels/bulk", []models.LabelData{labelData("A1"), labelData("A2")})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	labels := decode[[]models.Label](t, rec)
	require.Len(t, labels, 2)
	assert.Equal(t, 2, labels[1].ID)
}

func TestGenerateForm(t *testing.T) {
	srv, st := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/generate", map[string]any{
		"starting_value":   "A108",
		"quantity":         3,
		"aggregate_weight": 6005,
		"material":         "TARIMSAL",
		"dimension":        "3x171",
		"lot_code":         "25/627",
		"date":             "2025-10-16",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[generateResponse](t, rec)
	require.Len(t, resp.Labels, 3)
	assert.Equal(t, "A110", resp.Labels[2].LabelNumber)
	assert.Equal(t, 2002, resp.Labels[0].Weight)
	assert.Len(t, st.List(), 3)
}

func TestGenerateForm_FormatError(t *testing.T) {
	srv, st := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/generate", map[string]any{
		"starting_value":   "108A",
		"quantity":         3,
		"aggregate_weight": 6005,
		"date":             "2025-10-16",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, codeFormat, decode[errorResponse](t, rec).Code)
	assert.Empty(t, st.List())
}

func uploadWorkbook(t *testing.T, h http.Handler) models.ImportResult {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("DİLME PLANLARI")
	require.NoError(t, err)
	cells := map[string]any{
		"C5": "TARIMSAL", "V7": 45946,
		"W8": "A108", "C8": "25/627", "F8": 3, "I8": 3, "J8": 171, "K8": 300,
		"C9": "25/628", "F9": 3, "I9": 2, "J9": 120, "K9": 100,
		"W10": "B5", "C10": "25/629", "F10": 2, "I10": 2, "J10": 90, "K10": 50,
	}
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue("DİLME PLANLARI", ref, v))
	}
	wb, err := f.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "plan.xlsx")
	require.NoError(t, err)
	_, err = part.Write(wb.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/imports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return decode[models.ImportResult](t, rec)
}

func TestImportAndGenerate(t *testing.T) {
	srv, st := newTestServer(t)

	result := uploadWorkbook(t, srv)
	require.NotEmpty(t, result.SessionID)
	require.False(t, result.Fallback, result.Warning)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, "AUTO-2", result.Rows[1].LabelID)

	rec := doJSON(t, srv, http.MethodPost, "/api/imports/"+result.SessionID+"/generate", map[string]any{
		"selected": []int{0, 1, 2},
		"edits": map[string]any{
			"2": map[string]any{"label_id": "C10"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[generateResponse](t, rec)
	var numbers []string
	for _, l := range resp.Labels {
		numbers = append(numbers, l.LabelNumber)
	}
	assert.Equal(t, []string{"A108", "A109", "A110", "C10", "C11"}, numbers)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, 1, resp.Skipped[0].Row)
	assert.Equal(t, "AUTO-2", resp.Skipped[0].Identifier)
	assert.Len(t, st.List(), 5)

	// The session is closed once its labels are committed.
	rec = doJSON(t, srv, http.MethodPost, "/api/imports/"+result.SessionID+"/generate", map[string]any{"selected": []int{0}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportGenerate_EmptySelection(t *testing.T) {
	srv, _ := newTestServer(t)
	result := uploadWorkbook(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/imports/"+result.SessionID+"/generate", map[string]any{"selected": []int{}})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeEmptySelection, decode[errorResponse](t, rec).Code)
}

func TestImportGenerate_OnlyInvalidRows(t *testing.T) {
	srv, st := newTestServer(t)
	result := uploadWorkbook(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/imports/"+result.SessionID+"/generate", map[string]any{"selected": []int{1}})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, codeFormat, decode[errorResponse](t, rec).Code)
	assert.Empty(t, st.List())
}

func TestImportGenerate_RejectedRowDoesNotBlockOthers(t *testing.T) {
	srv, st := newTestServer(t)
	result := uploadWorkbook(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/imports/"+result.SessionID+"/generate", map[string]any{
		"selected": []int{0, 2},
		"edits": map[string]any{
			"0": map[string]any{"weight": 1},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[generateResponse](t, rec)
	require.Len(t, resp.Labels, 2)
	assert.Equal(t, "B5", resp.Labels[0].LabelNumber)
	assert.Equal(t, "B6", resp.Labels[1].LabelNumber)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, 0, resp.Skipped[0].Row)
	assert.Equal(t, "A108", resp.Skipped[0].Identifier)
	assert.Contains(t, resp.Skipped[0].Message, "weight")
	assert.Len(t, st.List(), 2)
}

func TestImportGenerate_OnlyRejectedRows(t *testing.T) {
	srv, st := newTestServer(t)
	result := uploadWorkbook(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/imports/"+result.SessionID+"/generate", map[string]any{
		"selected": []int{0},
		"edits": map[string]any{
			"0": map[string]any{"date": "16.10.2025"},
		},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	errResp := decode[errorResponse](t, rec)
	assert.Equal(t, codeValidation, errResp.Code)
	assert.Contains(t, errResp.Details, "date")
	assert.Empty(t, st.List())
}

func TestGenerateForm_QuantityTooLarge(t *testing.T) {
	srv, st := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/generate", map[string]any{
		"starting_value":   "A1",
		"quantity":         1 << 40,
		"aggregate_weight": 5,
		"date":             "2025-10-16",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, codeValidation, decode[errorResponse](t, rec).Code)
	assert.Empty(t, st.List())
}

func TestLabelsSummary(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/labels/bulk", []models.LabelData{
		labelData("A108"), labelData("A109"), labelData("B1"),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = doJSON(t, srv, http.MethodPut, "/api/labels/3", func() models.LabelData {
		d := labelData("B1")
		d.Weight = 6005
		return d
	}())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/labels/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[summaryResponse](t, rec)
	assert.Equal(t, 3, all.Count)
	assert.Equal(t, 7721, all.TotalWeight)
	assert.Equal(t, "7.721 KG", all.TotalWeightDisplay)

	rec = doJSON(t, srv, http.MethodGet, "/api/labels/summary?q=a10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := decode[summaryResponse](t, rec)
	assert.Equal(t, 2, filtered.Count)
	assert.Equal(t, 1716, filtered.TotalWeight)
}

func TestUpload_NotAWorkbook(t *testing.T) {
	srv, _ := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "notes.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/imports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[models.ImportResult](t, rec)
	assert.True(t, result.Fallback)
	assert.NotEmpty(t, result.Warning)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, labelstruct.FallbackRow("2026-10-16"), result.Rows[0])
}

func TestPrint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/labels/bulk", []models.LabelData{labelData("A1"), labelData("A2"), labelData("A3")})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/print?ids=3,1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	numbers := doc.Find(".label-number").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"A3", "A1"}, numbers)

	rec = doJSON(t, srv, http.MethodGet, "/api/print", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/print?ids=9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
