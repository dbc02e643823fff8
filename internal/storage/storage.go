// Package storage persists preprocessing results between requests. The
// Store interface keeps callers independent of the concrete backend; the
// in-memory implementation here is what the web UI uses.
package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"dataprep/internal/pipeline"
)

// ErrNotFound is returned when no entry exists under the requested ID.
var ErrNotFound = errors.New("storage: result not found")

// Entry is one saved preprocessing result.
type Entry struct {
	ID        string           `json:"id"`
	Filename  string           `json:"filename"`
	CreatedAt time.Time        `json:"createdAt"`
	Result    *pipeline.Result `json:"result"`
}

// Store is the persistence interface for preprocessing results.
type Store interface {
	Save(ctx context.Context, filename string, res *pipeline.Result) (Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}

// MemStore is a Store backed by a process-local map.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemStore() *MemStore {
	return &MemStore{entries: map[string]Entry{}}
}

func (m *MemStore) Save(ctx context.Context, filename string, res *pipeline.Result) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
		Result:    res,
	}
	m.mu.Lock()
	m.entries[e.ID] = e
	m.mu.Unlock()
	return e, nil
}

func (m *MemStore) Get(ctx context.Context, id string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// List returns all entries, newest first.
func (m *MemStore) List(ctx context.Context) ([]Entry, error) {
	m.mu.RLock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}
