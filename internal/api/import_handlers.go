package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/generator"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// generateRequest selects and optionally edits rows of an import session.
type generateRequest struct {
	Selected []int                     `json:"selected"`
	Edits    map[int]generator.RowEdit `json:"edits,omitempty"`
}

type skippedRow struct {
	Row        int    `json:"row"`
	Identifier string `json:"identifier"`
	Message    string `json:"message"`
}

type generateResponse struct {
	Labels  []models.Label `json:"labels"`
	Skipped []skippedRow   `json:"skipped,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "missing workbook upload in field \"file\"")
		return
	}
	defer file.Close()

	result := labelstruct.ExtractReader(file, header.Filename, s.opts)
	s.imports.Open(result)
	s.logger.Info("import session opened",
		"session", result.SessionID,
		"book", result.BookName,
		"rows", len(result.Rows),
		"fallback", result.Fallback,
		"open_sessions", s.imports.Len(),
	)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateImport(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")

	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	rows, err := s.imports.Rows(session)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	batch := generator.NewBatch(rows)
	for i, edit := range req.Edits {
		if err := batch.Edit(i, edit); err != nil {
			s.writeDomainError(w, err)
			return
		}
	}
	if err := batch.Select(req.Selected...); err != nil {
		s.writeDomainError(w, err)
		return
	}

	out, err := batch.Generate(s.store.Check)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := generateResponse{}
	for _, fe := range out.Skipped {
		s.logger.Warn("skipping row with invalid starting value", "session", session, "row", fe.Row, "identifier", fe.Identifier)
		resp.Skipped = append(resp.Skipped, skippedRow{Row: fe.Row, Identifier: fe.Identifier, Message: fe.Error()})
	}
	for _, re := range out.Rejected {
		s.logger.Warn("skipping row with rejected labels", "session", session, "row", re.Row, "identifier", re.LabelID, "error", re.Err)
		resp.Skipped = append(resp.Skipped, skippedRow{Row: re.Row, Identifier: re.LabelID, Message: re.Error()})
	}
	if err := out.Err(); err != nil {
		s.writeDomainError(w, err)
		return
	}

	labels, err := s.store.BulkInsert(out.Labels)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	resp.Labels = labels
	if resp.Labels == nil {
		resp.Labels = []models.Label{}
	}

	s.imports.Discard(session)
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDiscardImport(w http.ResponseWriter, r *http.Request) {
	s.imports.Discard(chi.URLParam(r, "session"))
	w.WriteHeader(http.StatusNoContent)
}

// handleGenerateForm expands a single manual form; an invalid starting value
// rejects the whole request.
func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	var form generator.Form
	if err := decodeJSON(r, &form); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	data, err := generator.Expand(form)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	labels, err := s.store.BulkInsert(data)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if labels == nil {
		labels = []models.Label{}
	}
	s.writeJSON(w, http.StatusCreated, generateResponse{Labels: labels})
}
