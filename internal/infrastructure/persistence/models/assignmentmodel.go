package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"numbers/internal/shared/constants"
)

// AssignmentModel represents the database persistence model for active
// assignments. The unique index on NumberID is the backstop that keeps
// two concurrent assigns from both succeeding.
type AssignmentModel struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	NumberID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_number_id"`
	VendorID    string            `gorm:"not null;size:100;index:idx_assignments_owner,priority:1"`
	AccountID   string            `gorm:"not null;size:100;index:idx_assignments_owner,priority:2"`
	CallbackURL *string           `gorm:"size:500"`
	Metadata    datatypes.JSONMap `gorm:""`
	Label       *string           `gorm:"size:100"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM.
func (AssignmentModel) TableName() string {
	return constants.TableAssignments
}
