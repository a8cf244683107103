package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cinelist/cinelist/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) (*Directory, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	d, err := NewDirectory(context.Background(), store)
	require.NoError(t, err)
	return d, store
}

func TestNewDirectory_SeedsDefaultRoster(t *testing.T) {
	d, store := newTestDirectory(t)

	users := d.All(context.Background())
	require.Len(t, users, 2)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, RoleAdmin, users[0].Role)
	assert.Equal(t, "user@example.com", users[1].Email)
	assert.Equal(t, RoleUser, users[1].Role)

	// seed must be written through immediately
	data, err := store.Get(context.Background(), "users")
	require.NoError(t, err)
	var persisted []User
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Len(t, persisted, 2)
}

func TestNewDirectory_LoadsPersistedRoster(t *testing.T) {
	store := database.NewMemoryStore()
	roster := []User{{ID: 7, Name: "dana", Email: "dana@example.com", Password: "pw", Role: RoleUser}}
	data, err := json.Marshal(roster)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "users", data))

	d, err := NewDirectory(context.Background(), store)
	require.NoError(t, err)

	users := d.All(context.Background())
	require.Len(t, users, 1)
	assert.Equal(t, 7, users[0].ID)

	// next id continues after the highest persisted id
	user, err := d.Register(context.Background(), "eve", "eve@example.com", "pw", "pw")
	require.NoError(t, err)
	assert.Equal(t, 8, user.ID)
}

func TestDirectory_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantID   int
		wantErr  error
	}{
		{
			name:     "seeded admin",
			email:    "admin@example.com",
			password: "admin123",
			wantID:   1,
		},
		{
			name:     "seeded user",
			email:    "user@example.com",
			password: "user123",
			wantID:   2,
		},
		{
			name:     "wrong password",
			email:    "admin@example.com",
			password: "wrong",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "admin123",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "password is case sensitive",
			email:    "admin@example.com",
			password: "ADMIN123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDirectory(t)
			user, err := d.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Email ou mot de passe incorrect", err.Error())
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, user.ID)
		})
	}
}

func TestDirectory_Register(t *testing.T) {
	t.Run("duplicate email leaves roster unchanged", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		before := len(d.All(context.Background()))

		user, err := d.Register(context.Background(), "imposter", "admin@example.com", "pw", "pw")
		require.ErrorIs(t, err, ErrEmailTaken)
		assert.Nil(t, user)
		assert.Len(t, d.All(context.Background()), before)
	})

	t.Run("password mismatch", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		_, err := d.Register(context.Background(), "dana", "dana@example.com", "pw1", "pw2")
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("assigns monotonic ids and the user role", func(t *testing.T) {
		d, _ := newTestDirectory(t)

		first, err := d.Register(context.Background(), "dana", "dana@example.com", "pw", "pw")
		require.NoError(t, err)
		second, err := d.Register(context.Background(), "eve", "eve@example.com", "pw", "pw")
		require.NoError(t, err)

		assert.Equal(t, 3, first.ID)
		assert.Equal(t, 4, second.ID)
		assert.Equal(t, RoleUser, first.Role)
	})

	t.Run("registered user can log in", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		_, err := d.Register(context.Background(), "dana", "dana@example.com", "secret", "secret")
		require.NoError(t, err)

		user, err := d.Login(context.Background(), "dana@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "dana", user.Name)
	})
}

func TestDirectory_All_MasksPasswords(t *testing.T) {
	d, _ := newTestDirectory(t)

	for _, u := range d.All(context.Background()) {
		assert.Equal(t, PasswordMask, u.Password)
	}

	// masking is a projection, the roster keeps the real password
	user, err := d.Login(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin123", user.Password)
}

func TestDirectory_Delete(t *testing.T) {
	d, store := newTestDirectory(t)

	ok, err := d.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, d.All(context.Background()), 1)

	// no existence check, a miss still reports success
	ok, err = d.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.True(t, ok)

	// deletion is written through
	data, err := store.Get(context.Background(), "users")
	require.NoError(t, err)
	var persisted []User
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Len(t, persisted, 1)
}

func TestDirectory_Update(t *testing.T) {
	t.Run("merges provided fields", func(t *testing.T) {
		d, _ := newTestDirectory(t)

		updated, err := d.Update(context.Background(), User{ID: 2, Name: "patrice", Role: RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, "patrice", updated.Name)
		assert.Equal(t, RoleAdmin, updated.Role)
		// untouched fields survive the merge
		assert.Equal(t, "user@example.com", updated.Email)
		assert.Equal(t, "user123", updated.Password)
	})

	t.Run("unknown id", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		_, err := d.Update(context.Background(), User{ID: 999, Name: "ghost"})
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("masked password is not written back", func(t *testing.T) {
		d, _ := newTestDirectory(t)
		_, err := d.Update(context.Background(), User{ID: 2, Password: PasswordMask})
		require.NoError(t, err)

		user, err := d.Login(context.Background(), "user@example.com", "user123")
		require.NoError(t, err)
		assert.Equal(t, 2, user.ID)
	})
}
