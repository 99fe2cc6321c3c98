// Package store holds the session's label collection in memory.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/ukaji3/labelstruct-go/internal/validation"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// ErrNotFound indicates no label has the requested id.
var ErrNotFound = errors.New("label not found")

// Store is the in-memory label collection. Surrogate ids are assigned as
// max(existing ids, 0) + offset, so ids freed by a delete at the end can be
// reused but never collide with a live label.
type Store struct {
	mu        sync.RWMutex
	labels    []models.Label
	validator *validation.Validator
	logger    *slog.Logger
}

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		validator: validation.New(),
		logger:    logger,
	}
}

// Create validates and adds one label.
func (s *Store) Create(data models.LabelData) (models.Label, error) {
	data = normalize(data)
	if err := s.validator.Validate(data); err != nil {
		return models.Label{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	label := models.Label{ID: s.maxID() + 1, LabelData: data}
	s.labels = append(s.labels, label)
	s.logger.Info("label created", "id", label.ID, "label_number", label.LabelNumber)
	return label, nil
}

// Update replaces the data of an existing label.
func (s *Store) Update(id int, data models.LabelData) (models.Label, error) {
	data = normalize(data)
	if err := s.validator.Validate(data); err != nil {
		return models.Label{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Label{}, fmt.Errorf("update %d: %w", id, ErrNotFound)
	}
	s.labels[i].LabelData = data
	s.logger.Info("label updated", "id", id, "label_number", data.LabelNumber)
	return s.labels[i], nil
}

// Delete removes a label.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	s.labels = slices.Delete(s.labels, i, i+1)
	s.logger.Info("label deleted", "id", id)
	return nil
}

// Get returns a label by id.
func (s *Store) Get(id int) (models.Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return models.Label{}, fmt.Errorf("get %d: %w", id, ErrNotFound)
	}
	return s.labels[i], nil
}

// List returns all labels in insertion order.
func (s *Store) List() []models.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.labels)
}

// Search returns labels whose label number, material or lot code contains
// term, ignoring case. A blank term returns every label.
func (s *Store) Search(term string) []models.Label {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Label
	for _, l := range s.labels {
		if strings.Contains(strings.ToLower(l.LabelNumber), term) ||
			strings.Contains(strings.ToLower(l.Material), term) ||
			strings.Contains(strings.ToLower(l.LotCode), term) {
			out = append(out, l)
		}
	}
	return out
}

// Check reports whether data would be accepted by Create, without storing it.
func (s *Store) Check(data models.LabelData) error {
	return s.validator.Validate(normalize(data))
}

// Summary totals a list of labels.
type Summary struct {
	Count       int `json:"count"`
	TotalWeight int `json:"total_weight"`
}

// Summarize returns the count and total weight of the labels matching term,
// as Search would return them.
func (s *Store) Summarize(term string) Summary {
	var sum Summary
	for _, l := range s.Search(term) {
		sum.Count++
		sum.TotalWeight += l.Weight
	}
	return sum
}

// BulkInsert validates every label and then adds them all, or none.
func (s *Store) BulkInsert(data []models.LabelData) ([]models.Label, error) {
	normalized := make([]models.LabelData, len(data))
	for i, d := range data {
		normalized[i] = normalize(d)
		if err := s.validator.Validate(normalized[i]); err != nil {
			return nil, fmt.Errorf("label %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.maxID()
	inserted := make([]models.Label, len(normalized))
	for i, d := range normalized {
		inserted[i] = models.Label{ID: base + i + 1, LabelData: d}
	}
	s.labels = append(s.labels, inserted...)
	s.logger.Info("labels inserted", "count", len(inserted))
	return inserted, nil
}

func (s *Store) maxID() int {
	m := 0
	for _, l := range s.labels {
		m = max(m, l.ID)
	}
	return m
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.labels, func(l models.Label) bool { return l.ID == id })
}

// normalize trims every field and upper-cases the label number.
func normalize(d models.LabelData) models.LabelData {
	d.LabelNumber = strings.ToUpper(strings.TrimSpace(d.LabelNumber))
	d.Material = strings.TrimSpace(d.Material)
	d.Dimension = strings.TrimSpace(d.Dimension)
	d.LotCode = strings.TrimSpace(d.LotCode)
	d.Date = strings.TrimSpace(d.Date)
	return d
}
