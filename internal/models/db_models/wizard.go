package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WizardState struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Version   int            `gorm:"not null"`
	Document  datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt int64          `gorm:"autoUpdateTime:milli"`
}

// GenerationQuota is the authoritative rolling counter per user and kind.
// Kept apart from WizardState; a wizard reset never touches it.
type GenerationQuota struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind   string    `gorm:"size:32;primaryKey"`
	Count  int       `gorm:"not null;default:0"`
	LastAt int64     `gorm:"not null;default:0"`
}
