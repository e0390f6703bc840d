package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const PreferencesVersion = "1.0"

// UserPreferences is the single onboarding answer set of a user, keyed by
// user id and overwritten on every accepted submission.
type UserPreferences struct {
	UserID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Answers     datatypes.JSON `gorm:"type:jsonb;not null"`
	Version     string         `gorm:"size:16;not null"`
	IsCompleted bool           `gorm:"not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
