package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/timmy/artglass/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository persists key/value UI preferences (e.g. the overlay
// toggle hotkey). Artwork cache and history are deliberately not stored
// here; they are session-local.
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a settings repository.
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored value for key, or fallback when nothing is
// persisted yet.
func (r *SettingsRepository) Get(ctx context.Context, key, fallback string) (string, error) {
	var setting domain.Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load setting %q: %w", key, err)
	}
	return setting.Value, nil
}

// Set stores or replaces the value for key.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	setting := domain.Setting{Key: key, Value: value}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to store setting %q: %w", key, err)
	}
	return nil
}
