// Package store keeps the sessions owned by a remote authority, plus an
// optional ledger of finished games.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/they4kman/gosweep/game"
)

var ErrNotFound = errors.New("session not found")

// Entry is one session held by the authority. Callers must hold the entry's
// lock while sweeping its session.
type Entry struct {
	sync.Mutex

	ID        string
	UserID    string
	Session   *game.Session
	StartedAt time.Time
}

// Store defines the persistence interface for live sessions
type Store interface {
	// Save adds or replaces an entry
	Save(ctx context.Context, entry *Entry) error

	// Get retrieves an entry by ID, or ErrNotFound
	Get(ctx context.Context, id string) (*Entry, error)

	// Prune drops entries started before the given time and reports how many
	Prune(ctx context.Context, before time.Time) (int, error)
}

type memory struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewMemoryStore() Store {
	return &memory{entries: make(map[string]*Entry)}
}

func (m *memory) Save(ctx context.Context, entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.entries[id]; ok {
		return entry, nil
	}
	return nil, errors.Wrapf(ErrNotFound, "session %s", id)
}

func (m *memory) Prune(ctx context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, entry := range m.entries {
		if entry.StartedAt.Before(before) {
			delete(m.entries, id)
			pruned++
		}
	}
	return pruned, nil
}
