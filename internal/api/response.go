package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukaji3/labelstruct-go/internal/imports"
	"github.com/ukaji3/labelstruct-go/internal/store"
	"github.com/ukaji3/labelstruct-go/internal/validation"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/generator"
)

// Error codes returned in error bodies.
const (
	codeBadRequest     = "BAD_REQUEST"
	codeValidation     = "VALIDATION"
	codeFormat         = "FORMAT"
	codeNotFound       = "NOT_FOUND"
	codeEmptySelection = "EMPTY_SELECTION"
	codeInternal       = "INTERNAL"
)

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeDomainError maps store, validation and generator errors to responses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	var ferr *generator.FormatError

	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    codeValidation,
			Message: verr.Message,
			Details: verr.Fields,
		})
	case errors.Is(err, generator.ErrQuantityTooLarge):
		s.writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
	case errors.As(err, &ferr):
		s.writeError(w, http.StatusUnprocessableEntity, codeFormat, ferr.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, imports.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, generator.ErrEmptySelection):
		s.writeError(w, http.StatusBadRequest, codeEmptySelection, err.Error())
	case errors.Is(err, generator.ErrRowOutOfRange):
		s.writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
