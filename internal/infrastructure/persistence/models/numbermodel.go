package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"numbers/internal/shared/constants"
)

// NumberModel represents the database persistence model for numbers.
type NumberModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PhoneNumber       string         `gorm:"not null;size:20;uniqueIndex:idx_numbers_phone_number"`
	ProviderID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_numbers_provider_id"`
	Country           string         `gorm:"not null;size:2;index:idx_numbers_country"`
	Type              string         `gorm:"not null;size:20"`
	Classification    string         `gorm:"not null;size:20;index:idx_numbers_classification"`
	Capabilities      datatypes.JSON `gorm:"not null"`
	DedicatedReceiver bool           `gorm:"not null;default:false"`
	AvailableAfter    *time.Time     `gorm:"index:idx_numbers_available_after"`
	Status            *string        `gorm:"size:20"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM.
func (NumberModel) TableName() string {
	return constants.TableNumbers
}
