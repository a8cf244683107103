package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cinelist/cinelist/database"
)

// Validation failures are returned as values and carry the user-visible message.
var (
	ErrInvalidCredentials = errors.New("Email ou mot de passe incorrect")
	ErrEmailTaken         = errors.New("Cet email est déjà utilisé")
	ErrPasswordMismatch   = errors.New("Les mots de passe ne correspondent pas")
	ErrUserNotFound       = errors.New("Utilisateur introuvable")
)

// Role is the authorization role of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// PasswordMask replaces the password whenever a user record leaves the directory.
const PasswordMask = "***"

// usersKey is the storage key the roster is persisted under.
const usersKey = "users"

// User is a registered user. Passwords are stored as-is: this mirrors the data
// model of the original client-local application and is not a credential store.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Masked returns a copy of the user with the password replaced by the mask.
func (u User) Masked() User {
	u.Password = PasswordMask
	return u
}

// Directory owns the in-memory roster of registered users and writes it through
// to the store after every mutation. It performs no authorization checks; the
// caller's boundary is responsible for gating admin-only operations.
type Directory struct {
	store database.Store

	mu     sync.RWMutex
	users  []User
	nextID int
}

// NewDirectory loads the roster from the store, seeding the default accounts
// when none has been persisted yet.
func NewDirectory(ctx context.Context, store database.Store) (*Directory, error) {
	d := &Directory{store: store}

	data, err := store.Get(ctx, usersKey)
	switch {
	case errors.Is(err, database.ErrKeyNotFound):
		d.users = seedUsers()
		if err := d.persist(ctx); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, &d.users); err != nil {
			return nil, fmt.Errorf("failed to decode roster: %w", err)
		}
	}

	d.nextID = maxID(d.users) + 1
	return d, nil
}

func seedUsers() []User {
	return []User{
		{
			ID:        1,
			Name:      "robert",
			Email:     "admin@example.com",
			Password:  "admin123",
			Role:      RoleAdmin,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Name:      "patrick",
			Email:     "user@example.com",
			Password:  "user123",
			Role:      RoleUser,
			CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func maxID(users []User) int {
	var max int
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max
}

// Login matches email and password exactly against the roster.
// A failed match is a value error carrying the user-visible message.
func (d *Directory) Login(ctx context.Context, email, password string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Email == email && u.Password == password {
			if err := d.persist(ctx); err != nil {
				return nil, err
			}
			user := u
			return &user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Register creates a new user with the user role. The id is assigned from a
// monotonic counter seeded from the persisted roster.
func (d *Directory) Register(ctx context.Context, name, email, password, confirmPassword string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	user := User{
		ID:        d.nextID,
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	d.nextID++
	d.users = append(d.users, user)

	if err := d.persist(ctx); err != nil {
		return nil, err
	}
	return &user, nil
}

// All returns every user with the password masked.
func (d *Directory) All(_ context.Context) []User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]User, len(d.users))
	for i, u := range d.users {
		users[i] = u.Masked()
	}
	return users
}

// Get returns the user with the given id, unmasked.
func (d *Directory) Get(_ context.Context, id int) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Delete removes the user with the given id. There is no existence check; a
// miss still persists the unchanged roster and reports success.
func (d *Directory) Delete(ctx context.Context, id int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	filtered := d.users[:0]
	for _, u := range d.users {
		if u.ID != id {
			filtered = append(filtered, u)
		}
	}
	d.users = filtered

	if err := d.persist(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Update merges the non-zero fields of partial into the user matching its id
// and returns the merged record.
func (d *Directory) Update(ctx context.Context, partial User) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.users {
		if d.users[i].ID != partial.ID {
			continue
		}
		if partial.Name != "" {
			d.users[i].Name = partial.Name
		}
		if partial.Email != "" {
			d.users[i].Email = partial.Email
		}
		if partial.Role != "" {
			d.users[i].Role = partial.Role
		}
		if partial.Password != "" && partial.Password != PasswordMask {
			d.users[i].Password = partial.Password
		}

		if err := d.persist(ctx); err != nil {
			return nil, err
		}
		user := d.users[i]
		return &user, nil
	}
	return nil, ErrUserNotFound
}

// persist writes the roster through to the store. Callers must hold the lock.
func (d *Directory) persist(ctx context.Context) error {
	data, err := json.Marshal(d.users)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	if err := d.store.Set(ctx, usersKey, data); err != nil {
		log.Error("failed to persist roster", "error", err)
		return err
	}
	return nil
}
