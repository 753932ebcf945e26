// Package audit provides the append-only revision log of assignment
// mutations and the query model over it.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// RevisionType marks what kind of mutation produced a revision.
type RevisionType string

const (
	RevisionAdd    RevisionType = "ADD"
	RevisionModify RevisionType = "MODIFY"
	RevisionDelete RevisionType = "DELETE"
)

// IsValid checks if the revision type is valid.
func (t RevisionType) IsValid() bool {
	return t == RevisionAdd || t == RevisionModify || t == RevisionDelete
}

// Revision is one immutable entry of the assignment audit log: a snapshot
// of the assignment at mutation time plus revision bookkeeping. The
// revision number is a globally monotonic sequence assigned by the store.
type Revision struct {
	RevisionNumber int64
	RevisionType   RevisionType
	Timestamp      time.Time

	// Assignment snapshot.
	AssignmentID uuid.UUID
	NumberID     uuid.UUID
	VendorID     string
	AccountID    string
	CallbackURL  *string
	Metadata     map[string]string
	Label        *string
	Created      time.Time

	// Deleted carries the revision timestamp for DELETE revisions and is
	// nil everywhere else. It only exists in audit reads.
	Deleted *time.Time
}
