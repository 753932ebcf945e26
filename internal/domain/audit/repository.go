package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevisionRepository reads the append-only assignment revision log.
// Writing happens inside the assignment store, in the same transaction as
// the mutation that produced the revision.
type RevisionRepository interface {
	// List returns revisions matching the filter ordered by assignment id
	// descending, then revision number descending. Up to
	// filter.PageSize+1 rows are returned so the caller can detect a
	// following page.
	List(ctx context.Context, filter ListFilter) ([]Revision, error)

	// LatestAddByNumberID returns the most recent ADD revision for a
	// number, or nil when the number was never assigned.
	LatestAddByNumberID(ctx context.Context, numberID uuid.UUID) (*Revision, error)
}

// ListFilter defines the audit search options. All fields are optional and
// AND-combined. The deleted bounds implicitly restrict the search to
// DELETE revisions.
type ListFilter struct {
	AssignmentID  *uuid.UUID
	NumberID      *uuid.UUID
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	DeletedBefore *time.Time
	DeletedAfter  *time.Time
	VendorID      string
	AccountID     string
	PageSize      int
	Cursor        *Cursor
}

// Cursor is the keyset position of the last row of the previous page.
type Cursor struct {
	LastAssignmentID   uuid.UUID
	LastRevisionNumber int64
}
