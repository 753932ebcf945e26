package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"numbers/internal/shared/constants"
)

// AssignmentRevisionModel is one append-only row of the assignment audit
// log. The autoincrement primary key doubles as the globally monotonic
// revision number.
type AssignmentRevisionModel struct {
	RevisionNumber int64             `gorm:"primaryKey;autoIncrement"`
	RevisionType   string            `gorm:"not null;size:10"`
	Timestamp      time.Time         `gorm:"not null;index:idx_assignment_revisions_timestamp"`
	AssignmentID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_assignment_revisions_assignment"`
	NumberID       uuid.UUID         `gorm:"type:uuid;not null;index:idx_assignment_revisions_number"`
	VendorID       string            `gorm:"not null;size:100;index:idx_assignment_revisions_owner,priority:1"`
	AccountID      string            `gorm:"not null;size:100;index:idx_assignment_revisions_owner,priority:2"`
	CallbackURL    *string           `gorm:"size:500"`
	Metadata       datatypes.JSONMap `gorm:""`
	Label          *string           `gorm:"size:100"`
	Created        time.Time         `gorm:"not null"`
}

// TableName specifies the table name for GORM.
func (AssignmentRevisionModel) TableName() string {
	return constants.TableAssignmentRevisions
}
