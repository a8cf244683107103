package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cinelist/cinelist/database"
)

// reviewsKey is the storage key the review collection is persisted under.
const reviewsKey = "reviews"

// Review is a user comment on a movie.
type Review struct {
	ID      int       `json:"id"`
	MovieID int       `json:"movieId"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// Store owns the global review collection and writes it through to the store
// after every mutation. The collection is seeded with the bundled sample
// reviews when nothing has been persisted yet.
type Store struct {
	store database.Store

	mu      sync.RWMutex
	reviews []Review
}

// NewStore loads the review collection, seeding it on first use.
func NewStore(ctx context.Context, store database.Store) (*Store, error) {
	s := &Store{store: store}

	data, err := store.Get(ctx, reviewsKey)
	switch {
	case errors.Is(err, database.ErrKeyNotFound):
		s.reviews = seedReviews()
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, &s.reviews); err != nil {
			return nil, fmt.Errorf("failed to decode reviews: %w", err)
		}
	}

	return s, nil
}

// ByMovie returns the reviews for a movie, newest first. The sort is stable so
// reviews sharing a timestamp keep their insertion order.
func (s *Store) ByMovie(_ context.Context, movieID int) []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []Review
	for _, r := range s.reviews {
		if r.MovieID == movieID {
			reviews = append(reviews, r)
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Date.After(reviews[j].Date)
	})
	return reviews
}

// All returns the full review collection, unsorted.
func (s *Store) All(_ context.Context) []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]Review, len(s.reviews))
	copy(reviews, s.reviews)
	return reviews
}

// Add appends a review with the next free id and the current time.
func (s *Store) Add(ctx context.Context, movieID int, author, content string) (*Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review := Review{
		ID:      s.nextID(),
		MovieID: movieID,
		Author:  author,
		Content: content,
		Date:    time.Now().UTC(),
	}
	s.reviews = append(s.reviews, review)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete filters out the review with the given id.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.reviews[:0]
	for _, r := range s.reviews {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	s.reviews = filtered

	return s.persist(ctx)
}

// nextID is max existing id + 1, or 1 when the collection is empty.
// Callers must hold the lock.
func (s *Store) nextID() int {
	var max int
	for _, r := range s.reviews {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// persist writes the collection through to the store. Callers must hold the lock.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.reviews)
	if err != nil {
		return fmt.Errorf("failed to encode reviews: %w", err)
	}
	if err := s.store.Set(ctx, reviewsKey, data); err != nil {
		log.Error("failed to persist reviews", "error", err)
		return err
	}
	return nil
}
