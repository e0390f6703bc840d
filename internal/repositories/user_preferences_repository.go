package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodybuddy/internal/models/db_models"
)

type UserPreferencesRepository interface {
	// Upsert replaces the whole record of pref.UserID in one statement.
	Upsert(ctx context.Context, pref *db_models.UserPreferences) error
	FindByUserID(ctx context.Context, userID string) (*db_models.UserPreferences, error)
}

type userPreferencesRepository struct {
	db *gorm.DB
}

func NewUserPreferencesRepository(db *gorm.DB) UserPreferencesRepository {
	return &userPreferencesRepository{db: db}
}

func (r *userPreferencesRepository) Upsert(ctx context.Context, pref *db_models.UserPreferences) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"answers", "version", "is_completed", "completed_at", "updated_at"}),
		}).
		Create(pref).Error
}

func (r *userPreferencesRepository) FindByUserID(ctx context.Context, userID string) (*db_models.UserPreferences, error) {
	var pref db_models.UserPreferences
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}
