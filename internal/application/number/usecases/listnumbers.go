package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"numbers/internal/domain/number"
	vo "numbers/internal/domain/number/valueobjects"
	"numbers/internal/shared/constants"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/logger"
)

// ListNumbersQuery searches the number pool. All filters are optional
// and AND-combined.
type ListNumbersQuery struct {
	Country        string
	Classification string
	Capability     string
	Assigned       *bool
	Matching       string
	AvailableBy    *time.Time
	PageSize       int
	Token          string
}

// ListNumbersResult is one page of numbers plus the token of the next
// page, when one exists.
type ListNumbersResult struct {
	Numbers   []*NumberResult `json:"numbers"`
	NextToken *string         `json:"next_token,omitempty"`
}

type ListNumbersUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	logger         logger.Interface
}

func NewListNumbersUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	logger logger.Interface,
) *ListNumbersUseCase {
	return &ListNumbersUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (uc *ListNumbersUseCase) Execute(ctx context.Context, query ListNumbersQuery) (*ListNumbersResult, error) {
	filter, err := buildListFilter(query)
	if err != nil {
		return nil, err
	}

	rows, err := uc.numberRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list numbers", "error", err)
		return nil, apperrors.NewInternalError("failed to list numbers")
	}

	var nextToken *string
	if len(rows) > filter.PageSize {
		token := rows[filter.PageSize].ID().String()
		nextToken = &token
		rows = rows[:filter.PageSize]
	}

	assignments, err := uc.loadAssignments(ctx, rows)
	if err != nil {
		return nil, err
	}

	results := make([]*NumberResult, 0, len(rows))
	for _, n := range rows {
		results = append(results, newNumberResult(n, assignments[n.ID()]))
	}
	return &ListNumbersResult{Numbers: results, NextToken: nextToken}, nil
}

func (uc *ListNumbersUseCase) loadAssignments(ctx context.Context, rows []*number.Number) (map[uuid.UUID]*number.Assignment, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, n := range rows {
		ids = append(ids, n.ID())
	}
	assignments, err := uc.assignmentRepo.GetByNumberIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load assignments", "error", err)
		return nil, apperrors.NewInternalError("failed to load assignments")
	}
	return assignments, nil
}

func buildListFilter(query ListNumbersQuery) (number.ListFilter, error) {
	filter := number.ListFilter{
		Country:     query.Country,
		Assigned:    query.Assigned,
		Matching:    query.Matching,
		AvailableBy: query.AvailableBy,
		PageSize:    normalizePageSize(query.PageSize),
	}
	if query.Classification != "" {
		classification := vo.Classification(query.Classification)
		if !classification.IsValid() {
			return filter, apperrors.NewValidationError("invalid classification")
		}
		filter.Classification = classification
	}
	if query.Capability != "" {
		capability := vo.Capability(query.Capability)
		if !capability.IsValid() {
			return filter, apperrors.NewValidationError("invalid capability")
		}
		filter.Capability = capability
	}
	if query.Token != "" {
		token, err := uuid.Parse(query.Token)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid page token")
		}
		filter.Token = &token
	}
	return filter, nil
}

func normalizePageSize(pageSize int) int {
	switch {
	case pageSize <= 0:
		return constants.DefaultPageSize
	case pageSize > constants.MaxPageSize:
		return constants.MaxPageSize
	default:
		return pageSize
	}
}
