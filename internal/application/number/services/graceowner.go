package services

import (
	"context"
	"time"

	"numbers/internal/domain/account"
	"numbers/internal/domain/audit"
	"numbers/internal/domain/number"
)

// GraceOwnerChecker decides whether a reserved number may be claimed.
// During the grace period only the most recent prior owner, read from
// the assignment revision log, may take the number back.
type GraceOwnerChecker struct {
	revisions audit.RevisionRepository
}

// NewGraceOwnerChecker creates a checker backed by the revision log.
func NewGraceOwnerChecker(revisions audit.RevisionRepository) *GraceOwnerChecker {
	return &GraceOwnerChecker{revisions: revisions}
}

// IsClaimable reports whether candidate may claim n right now. Numbers
// whose reservation window has elapsed are claimable by anyone; inside
// the window the claim succeeds only for the latest prior owner.
func (g *GraceOwnerChecker) IsClaimable(ctx context.Context, n *number.Number, candidate account.VendorAccountID) (bool, error) {
	if n.IsAvailableAt(time.Now().UTC()) {
		return true, nil
	}

	last, err := g.revisions.LatestAddByNumberID(ctx, n.ID())
	if err != nil {
		return false, err
	}
	if last == nil {
		return false, nil
	}
	return last.VendorID == candidate.VendorID && last.AccountID == candidate.AccountID, nil
}
