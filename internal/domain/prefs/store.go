package prefs

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("preference not found")

// Store is durable per-device key/value storage for small values: tokens,
// settings and the serialized water records of a day.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Entry is the persisted shape shared by the SQL backends.
type Entry struct {
	Key   string `gorm:"primaryKey;size:191"`
	Value string `gorm:"type:text;not null"`
}

func (Entry) TableName() string {
	return "preferences"
}
