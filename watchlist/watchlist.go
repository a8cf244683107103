package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cinelist/cinelist/database"
	"github.com/cinelist/cinelist/tmdb"
	"github.com/samber/lo"
)

// Status tags a watchlist entry.
type Status string

const (
	StatusToWatch Status = "to-watch"
	StatusWatched Status = "watched"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusToWatch || s == StatusWatched
}

// Entry is a movie on a watchlist together with its status.
type Entry struct {
	tmdb.Movie
	Status Status `json:"status"`
}

// GuestKey is the shared bucket used when no user is authenticated.
const GuestKey = "watchlist_guest"

// Key returns the storage key for a user's watchlist.
func Key(userID int) string {
	return fmt.Sprintf("watchlist_%d", userID)
}

// Store manages per-user watchlists. The owning key is passed in at every call
// so a session change never leaves a store bound to a stale user.
type Store struct {
	store database.Store
	mu    sync.Mutex
}

// NewStore creates a watchlist store persisting through the given store.
func NewStore(store database.Store) *Store {
	return &Store{store: store}
}

// Add appends the movie with status to-watch. Adding a movie that is already
// on the list is a no-op.
func (s *Store) Add(ctx context.Context, key string, movie tmdb.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if lo.ContainsBy(entries, func(e Entry) bool { return e.ID == movie.ID }) {
		return nil
	}
	entries = append(entries, Entry{Movie: movie, Status: StatusToWatch})
	return s.save(ctx, key, entries)
}

// UpdateStatus sets the status of the entry with the given movie id. An absent
// id is a silent no-op; the list is persisted either way.
func (s *Store) UpdateStatus(ctx context.Context, key string, movieID int, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == movieID {
			entries[i].Status = status
		}
	}
	return s.save(ctx, key, entries)
}

// Remove filters out the entry with the given movie id.
func (s *Store) Remove(ctx context.Context, key string, movieID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	entries = lo.Filter(entries, func(e Entry, _ int) bool { return e.ID != movieID })
	return s.save(ctx, key, entries)
}

// All returns the full watchlist in insertion order.
func (s *Store) All(ctx context.Context, key string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, key)
}

// ToWatch returns the entries still to watch, in insertion order.
func (s *Store) ToWatch(ctx context.Context, key string) ([]Entry, error) {
	return s.byStatus(ctx, key, StatusToWatch)
}

// Watched returns the watched entries, in insertion order.
func (s *Store) Watched(ctx context.Context, key string) ([]Entry, error) {
	return s.byStatus(ctx, key, StatusWatched)
}

func (s *Store) byStatus(ctx context.Context, key string, status Status) ([]Entry, error) {
	entries, err := s.All(ctx, key)
	if err != nil {
		return nil, err
	}
	return lo.Filter(entries, func(e Entry, _ int) bool { return e.Status == status }), nil
}

func (s *Store) load(ctx context.Context, key string) ([]Entry, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, database.ErrKeyNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode watchlist %q: %w", key, err)
	}
	return entries, nil
}

func (s *Store) save(ctx context.Context, key string, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode watchlist %q: %w", key, err)
	}
	return s.store.Set(ctx, key, data)
}
