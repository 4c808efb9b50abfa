package prefs

import (
	"context"
	"errors"
	"time"

	domain "daily-planner-go/internal/domain/prefs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresRepository keeps preferences in a shared postgres database, for
// installations where several gateway processes serve the same account.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, key string) (string, error) {
	var entry domain.Entry
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (r *PostgresRepository) Set(ctx context.Context, key, value string) error {
	entry := domain.Entry{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      value,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&entry).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("key IN ?", keys).
		Delete(&domain.Entry{}).Error
}
