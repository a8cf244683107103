package database

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// ErrKeyNotFound is returned when no value is stored under the requested key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the durable key-value port every repository persists through.
// Values are JSON-encoded collections; the store itself treats them as opaque blobs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Entry is a single persisted key-value pair.
type Entry struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

// DB implements Store on top of a sqlite database.
type DB struct {
	db *gorm.DB
}

// New opens the sqlite database in the given directory and performs migrations.
func New(dbpath string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path.Join(dbpath, "cinelist.db")), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	if err := d.db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return entry.Value, nil
}

func (d *DB) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value}
	if err := d.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (d *DB) Delete(ctx context.Context, key string) error {
	if err := d.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
