package review

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cinelist/cinelist/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *database.MemoryStore) {
	t.Helper()
	kv := database.NewMemoryStore()
	s, err := NewStore(context.Background(), kv)
	require.NoError(t, err)
	return s, kv
}

func TestNewStore_SeedsSampleReviews(t *testing.T) {
	s, kv := newTestStore(t)

	all := s.All(context.Background())
	require.Len(t, all, 3)

	data, err := kv.Get(context.Background(), "reviews")
	require.NoError(t, err)
	var persisted []Review
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Len(t, persisted, 3)
}

func TestNewStore_LoadsPersistedReviews(t *testing.T) {
	kv := database.NewMemoryStore()
	reviews := []Review{{ID: 9, MovieID: 1, Author: "dana", Content: "ok", Date: time.Now().UTC()}}
	data, err := json.Marshal(reviews)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), "reviews", data))

	s, err := NewStore(context.Background(), kv)
	require.NoError(t, err)

	all := s.All(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, 9, all[0].ID)
}

func TestStore_ByMovie(t *testing.T) {
	s, _ := newTestStore(t)

	reviews := s.ByMovie(context.Background(), 1311031)
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.Equal(t, 1311031, r.MovieID)
	}
	// newest first, non-increasing by date
	for i := 1; i < len(reviews); i++ {
		assert.False(t, reviews[i].Date.After(reviews[i-1].Date))
	}
	assert.Equal(t, "Bob", reviews[0].Author)
	assert.Equal(t, "Alice", reviews[1].Author)

	assert.Empty(t, s.ByMovie(context.Background(), 424242))
}

func TestStore_ByMovie_EqualDatesKeepInsertionOrder(t *testing.T) {
	kv := database.NewMemoryStore()
	date := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	reviews := []Review{
		{ID: 1, MovieID: 5, Author: "first", Date: date},
		{ID: 2, MovieID: 5, Author: "second", Date: date},
	}
	data, err := json.Marshal(reviews)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), "reviews", data))

	s, err := NewStore(context.Background(), kv)
	require.NoError(t, err)

	got := s.ByMovie(context.Background(), 5)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Author)
	assert.Equal(t, "second", got[1].Author)
}

func TestStore_Add(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var maxID int
	for _, r := range s.All(ctx) {
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	added, err := s.Add(ctx, 603, "dana", "Still holds up.")
	require.NoError(t, err)
	assert.Greater(t, added.ID, maxID)
	assert.WithinDuration(t, time.Now().UTC(), added.Date, 5*time.Second)

	byMovie := s.ByMovie(ctx, 603)
	require.Len(t, byMovie, 1)
	assert.Equal(t, added.ID, byMovie[0].ID)
}

func TestStore_Add_EmptyStoreStartsAtOne(t *testing.T) {
	kv := database.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), "reviews", []byte("[]")))

	s, err := NewStore(context.Background(), kv)
	require.NoError(t, err)

	added, err := s.Add(context.Background(), 1, "dana", "first!")
	require.NoError(t, err)
	assert.Equal(t, 1, added.ID)
}

func TestStore_Delete(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, 3))
	assert.Len(t, s.All(ctx), 2)
	assert.Empty(t, s.ByMovie(ctx, 755898))

	// deletion is written through
	data, err := kv.Get(ctx, "reviews")
	require.NoError(t, err)
	var persisted []Review
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Len(t, persisted, 2)
}
