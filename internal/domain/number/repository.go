package number

import (
	"context"
	"time"

	"github.com/google/uuid"

	vo "numbers/internal/domain/number/valueobjects"
)

// Repository defines the interface for number persistence.
type Repository interface {
	// Create persists a new number.
	Create(ctx context.Context, n *Number) error

	// GetByID retrieves a number by id. Returns nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Number, error)

	// GetByIDForUpdate retrieves a number by id, locking the row for the
	// remainder of the enclosing transaction on engines that support it.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Number, error)

	// Update persists changes to an existing number.
	Update(ctx context.Context, n *Number) error

	// Delete removes a number.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns numbers matching the filter in id-ascending order.
	// One row more than filter.PageSize is returned when another page exists.
	List(ctx context.Context, filter ListFilter) ([]*Number, error)
}

// AssignmentRepository defines the interface for assignment persistence.
// Implementations must append a revision to the audit log inside the same
// transaction as every mutation.
type AssignmentRepository interface {
	// Create persists a new assignment (revision type ADD).
	Create(ctx context.Context, a *Assignment) error

	// Update persists changes to an assignment (revision type MODIFY).
	Update(ctx context.Context, a *Assignment) error

	// Delete removes an assignment (revision type DELETE).
	Delete(ctx context.Context, a *Assignment) error

	// GetByNumberID returns the active assignment of a number, or nil.
	GetByNumberID(ctx context.Context, numberID uuid.UUID) (*Assignment, error)

	// GetByNumberIDs returns the active assignments for a set of numbers,
	// keyed by number id.
	GetByNumberIDs(ctx context.Context, numberIDs []uuid.UUID) (map[uuid.UUID]*Assignment, error)
}

// ListFilter defines the search options for listing numbers. Token-based:
// Token carries the id of the first row of the requested page.
type ListFilter struct {
	Country        string
	Classification vo.Classification
	Capability     vo.Capability
	Assigned       *bool
	Matching       string // phone number prefix
	AvailableBy    *time.Time
	VendorID       string
	AccountID      string
	PageSize       int
	Token          *uuid.UUID
}
