package usecases

import (
	"context"

	"github.com/google/uuid"

	"numbers/internal/domain/number"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/logger"
)

// ListNumberAssignmentsQuery lists the numbers currently assigned to a
// vendor account.
type ListNumberAssignmentsQuery struct {
	VendorID  string
	AccountID string
	PageSize  int
	Token     string
}

type ListNumberAssignmentsUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	logger         logger.Interface
}

func NewListNumberAssignmentsUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	logger logger.Interface,
) *ListNumberAssignmentsUseCase {
	return &ListNumberAssignmentsUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (uc *ListNumberAssignmentsUseCase) Execute(ctx context.Context, query ListNumberAssignmentsQuery) (*ListNumbersResult, error) {
	if query.VendorID == "" {
		return nil, apperrors.NewValidationError("vendor id is required")
	}

	filter, err := buildListFilter(ListNumbersQuery{PageSize: query.PageSize, Token: query.Token})
	if err != nil {
		return nil, err
	}
	filter.VendorID = query.VendorID
	filter.AccountID = query.AccountID
	assigned := true
	filter.Assigned = &assigned

	rows, err := uc.numberRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list assigned numbers", "vendor_id", query.VendorID, "error", err)
		return nil, apperrors.NewInternalError("failed to list assigned numbers")
	}

	var nextToken *string
	if len(rows) > filter.PageSize {
		token := rows[filter.PageSize].ID().String()
		nextToken = &token
		rows = rows[:filter.PageSize]
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, n := range rows {
		ids = append(ids, n.ID())
	}
	assignments := map[uuid.UUID]*number.Assignment{}
	if len(ids) > 0 {
		assignments, err = uc.assignmentRepo.GetByNumberIDs(ctx, ids)
		if err != nil {
			uc.logger.Errorw("failed to load assignments", "vendor_id", query.VendorID, "error", err)
			return nil, apperrors.NewInternalError("failed to load assignments")
		}
	}

	results := make([]*NumberResult, 0, len(rows))
	for _, n := range rows {
		results = append(results, newNumberResult(n, assignments[n.ID()]))
	}
	return &ListNumbersResult{Numbers: results, NextToken: nextToken}, nil
}
