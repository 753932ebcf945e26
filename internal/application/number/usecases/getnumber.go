package usecases

import (
	"context"

	"github.com/google/uuid"

	"numbers/internal/domain/number"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/logger"
)

type GetNumberQuery struct {
	NumberID string
}

type GetNumberUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	logger         logger.Interface
}

func NewGetNumberUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	logger logger.Interface,
) *GetNumberUseCase {
	return &GetNumberUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (uc *GetNumberUseCase) Execute(ctx context.Context, query GetNumberQuery) (*NumberResult, error) {
	numberID, err := uuid.Parse(query.NumberID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid number id")
	}

	n, err := uc.numberRepo.GetByID(ctx, numberID)
	if err != nil {
		uc.logger.Errorw("failed to load number", "number_id", numberID, "error", err)
		return nil, apperrors.NewInternalError("failed to load number")
	}
	if n == nil {
		return nil, apperrors.NewNotFoundError("number not found")
	}

	a, err := uc.assignmentRepo.GetByNumberID(ctx, numberID)
	if err != nil {
		uc.logger.Errorw("failed to load assignment", "number_id", numberID, "error", err)
		return nil, apperrors.NewInternalError("failed to load assignment")
	}

	return newNumberResult(n, a), nil
}
