// Package api exposes the label collection and the import workflow over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ukaji3/labelstruct-go/internal/imports"
	"github.com/ukaji3/labelstruct-go/internal/store"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct"
)

// maxUploadBytes bounds workbook uploads.
const maxUploadBytes = 32 << 20

// Server routes HTTP requests to the store and import cache.
type Server struct {
	store   *store.Store
	imports *imports.Cache
	opts    labelstruct.Options
	logger  *slog.Logger
	router  chi.Router
}

// New creates a server with its routes registered.
func New(st *store.Store, cache *imports.Cache, opts labelstruct.Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	opts.Logger = logger

	s := &Server{
		store:   st,
		imports: cache,
		opts:    opts,
		logger:  logger,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/labels", s.handleListLabels)
		r.Get("/labels/summary", s.handleSummary)
		r.Post("/labels", s.handleCreateLabel)
		r.Post("/labels/bulk", s.handleBulkInsert)
		r.Put("/labels/{id}", s.handleUpdateLabel)
		r.Delete("/labels/{id}", s.handleDeleteLabel)

		r.Post("/imports", s.handleUpload)
		r.Post("/imports/{session}/generate", s.handleGenerateImport)
		r.Delete("/imports/{session}", s.handleDiscardImport)

		r.Post("/generate", s.handleGenerateForm)
		r.Get("/print", s.handlePrint)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
