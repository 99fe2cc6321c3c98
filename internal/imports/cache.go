// Package imports keeps extracted rows between the preview and generate steps.
package imports

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

// ErrSessionNotFound indicates an unknown or discarded import session.
var ErrSessionNotFound = errors.New("import session not found")

// Cache holds import results by session id.
type Cache struct {
	mu       sync.Mutex
	sessions map[string]*models.ImportResult
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{sessions: make(map[string]*models.ImportResult)}
}

// Open stores a result under a new session id and sets result.SessionID.
func (c *Cache) Open(result *models.ImportResult) string {
	id := uuid.NewString()
	result.SessionID = id

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[id] = result
	return id
}

// Rows returns a copy of a session's rows.
func (c *Cache) Rows(id string) ([]models.RawImportRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return slices.Clone(result.Rows), nil
}

// Discard removes a session.
func (c *Cache) Discard(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
}

// Len returns the number of open sessions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}
