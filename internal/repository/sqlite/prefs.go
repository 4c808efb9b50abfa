package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	prefsdomain "daily-planner-go/internal/domain/prefs"
)

// PrefsRepository stores preferences in the device-local sqlite file.
type PrefsRepository struct {
	conn *sql.DB
}

func NewPrefsRepository(conn *sql.DB) *PrefsRepository {
	return &PrefsRepository{conn: conn}
}

func (r *PrefsRepository) Get(ctx context.Context, key string) (string, error) {
	row := r.conn.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", prefsdomain.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *PrefsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

func (r *PrefsRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, key)
	}

	_, err := r.conn.ExecContext(ctx, "DELETE FROM preferences WHERE key IN ("+placeholders+")", args...)
	return err
}
