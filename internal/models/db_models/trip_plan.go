package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// TripPlan stores the itinerary as an opaque blob; it is not re-validated after user edits.
type TripPlan struct {
	BaseModel
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null"`
	Name        string         `gorm:"not null"`
	Destination string         `gorm:"size:255"`
	StartDate   string         `gorm:"size:10"`
	EndDate     string         `gorm:"size:10"`
	Cities      pq.StringArray `gorm:"type:text[]"`
	Interests   pq.StringArray `gorm:"type:text[]"`
	Itinerary   datatypes.JSON `gorm:"type:jsonb"`
}
