package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ukaji3/labelstruct-go/internal/store"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/render"
)

func (s *Server) handleListLabels(w http.ResponseWriter, r *http.Request) {
	labels := s.store.Search(r.URL.Query().Get("q"))
	if labels == nil {
		labels = []models.Label{}
	}
	s.writeJSON(w, http.StatusOK, labels)
}

type summaryResponse struct {
	store.Summary
	TotalWeightDisplay string `json:"total_weight_display"`
}

// handleSummary reports the count and total weight of the labels matching ?q=.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum := s.store.Summarize(r.URL.Query().Get("q"))
	s.writeJSON(w, http.StatusOK, summaryResponse{
		Summary:            sum,
		TotalWeightDisplay: render.FormatWeight(sum.TotalWeight),
	})
}

func (s *Server) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	var data models.LabelData
	if err := decodeJSON(r, &data); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	label, err := s.store.Create(data)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, label)
}

func (s *Server) handleBulkInsert(w http.ResponseWriter, r *http.Request) {
	var data []models.LabelData
	if err := decodeJSON(r, &data); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	labels, err := s.store.BulkInsert(data)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, labels)
}

func (s *Server) handleUpdateLabel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid label id")
		return
	}

	var data models.LabelData
	if err := decodeJSON(r, &data); err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	label, err := s.store.Update(id, data)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, label)
}

func (s *Server) handleDeleteLabel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid label id")
		return
	}

	if err := s.store.Delete(id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePrint renders the labels named by ?ids=1,2,3 in that order.
func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		s.writeError(w, http.StatusBadRequest, codeEmptySelection, "no labels selected for printing")
		return
	}

	var labels []models.Label
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, codeBadRequest, "invalid label id "+strconv.Quote(part))
			return
		}
		label, err := s.store.Get(id)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		labels = append(labels, label)
	}

	var buf bytes.Buffer
	if err := render.HTML(&buf, labels); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
