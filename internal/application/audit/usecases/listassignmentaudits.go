// Package usecases implements the read side of the assignment audit log.
package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"numbers/internal/domain/audit"
	"numbers/internal/shared/constants"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/logger"
)

// ListAssignmentAuditsQuery searches the assignment revision log. All
// filters are optional and AND-combined; the deleted bounds implicitly
// restrict the search to DELETE revisions.
type ListAssignmentAuditsQuery struct {
	AssignmentID  string
	NumberID      string
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	DeletedBefore *time.Time
	DeletedAfter  *time.Time
	VendorID      string
	AccountID     string
	PageSize      int
	Token         string
}

// AssignmentAuditResult is one revision of an assignment: the snapshot at
// mutation time plus revision bookkeeping.
type AssignmentAuditResult struct {
	AssignmentID   string            `json:"assignment_id"`
	RevisionNumber int64             `json:"revision_number"`
	RevisionType   string            `json:"revision_type"`
	Timestamp      time.Time         `json:"timestamp"`
	NumberID       string            `json:"number_id"`
	VendorID       string            `json:"vendor_id"`
	AccountID      string            `json:"account_id"`
	CallbackURL    *string           `json:"callback_url,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Label          *string           `json:"label,omitempty"`
	Created        time.Time         `json:"created"`
	Deleted        *time.Time        `json:"deleted,omitempty"`
}

// ListAssignmentAuditsResult is one page of revisions plus the opaque
// token of the next page, when one exists.
type ListAssignmentAuditsResult struct {
	Audits    []AssignmentAuditResult `json:"audits"`
	NextToken *string                 `json:"next_token,omitempty"`
}

type ListAssignmentAuditsUseCase struct {
	revisions audit.RevisionRepository
	logger    logger.Interface
}

func NewListAssignmentAuditsUseCase(revisions audit.RevisionRepository, logger logger.Interface) *ListAssignmentAuditsUseCase {
	return &ListAssignmentAuditsUseCase{revisions: revisions, logger: logger}
}

func (uc *ListAssignmentAuditsUseCase) Execute(ctx context.Context, query ListAssignmentAuditsQuery) (*ListAssignmentAuditsResult, error) {
	filter, err := buildRevisionFilter(query)
	if err != nil {
		return nil, err
	}

	rows, err := uc.revisions.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list assignment audits", "error", err)
		return nil, apperrors.NewInternalError("failed to list assignment audits")
	}

	var nextToken *string
	if len(rows) > filter.PageSize {
		last := rows[filter.PageSize]
		token := audit.EncodeToken(audit.Cursor{
			LastAssignmentID:   last.AssignmentID,
			LastRevisionNumber: last.RevisionNumber,
		})
		nextToken = &token
		rows = rows[:filter.PageSize]
	}

	audits := make([]AssignmentAuditResult, 0, len(rows))
	for _, rev := range rows {
		audits = append(audits, newAuditResult(rev))
	}
	return &ListAssignmentAuditsResult{Audits: audits, NextToken: nextToken}, nil
}

func buildRevisionFilter(query ListAssignmentAuditsQuery) (audit.ListFilter, error) {
	filter := audit.ListFilter{
		CreatedBefore: query.CreatedBefore,
		CreatedAfter:  query.CreatedAfter,
		DeletedBefore: query.DeletedBefore,
		DeletedAfter:  query.DeletedAfter,
		VendorID:      query.VendorID,
		AccountID:     query.AccountID,
		PageSize:      query.PageSize,
	}
	if filter.PageSize <= 0 {
		filter.PageSize = constants.DefaultAuditPageSize
	}
	if query.AssignmentID != "" {
		id, err := uuid.Parse(query.AssignmentID)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid assignment id")
		}
		filter.AssignmentID = &id
	}
	if query.NumberID != "" {
		id, err := uuid.Parse(query.NumberID)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid number id")
		}
		filter.NumberID = &id
	}
	if query.Token != "" {
		cursor, err := audit.DecodeToken(query.Token)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid page token")
		}
		filter.Cursor = &cursor
	}
	return filter, nil
}

// newAuditResult maps a revision, stamping DELETE rows with the revision
// timestamp as the snapshot's deletion time.
func newAuditResult(rev audit.Revision) AssignmentAuditResult {
	result := AssignmentAuditResult{
		AssignmentID:   rev.AssignmentID.String(),
		RevisionNumber: rev.RevisionNumber,
		RevisionType:   string(rev.RevisionType),
		Timestamp:      rev.Timestamp,
		NumberID:       rev.NumberID.String(),
		VendorID:       rev.VendorID,
		AccountID:      rev.AccountID,
		CallbackURL:    rev.CallbackURL,
		Metadata:       rev.Metadata,
		Label:          rev.Label,
		Created:        rev.Created,
	}
	if rev.RevisionType == audit.RevisionDelete {
		deleted := rev.Timestamp
		result.Deleted = &deleted
	}
	return result
}
