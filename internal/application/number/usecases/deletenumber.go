package usecases

import (
	"context"

	"github.com/google/uuid"

	"numbers/internal/domain/number"
	"numbers/internal/shared/db"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/logger"
)

// DeleteNumberCommand removes a number from the platform pool. Numbers
// with an active assignment cannot be deleted.
type DeleteNumberCommand struct {
	NumberID string
}

type DeleteNumberUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewDeleteNumberUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *DeleteNumberUseCase {
	return &DeleteNumberUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *DeleteNumberUseCase) Execute(ctx context.Context, cmd DeleteNumberCommand) error {
	numberID, err := uuid.Parse(cmd.NumberID)
	if err != nil {
		return apperrors.NewValidationError("invalid number id")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		n, err := uc.numberRepo.GetByIDForUpdate(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load number", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load number")
		}
		if n == nil {
			return apperrors.NewNotFoundError("number not found")
		}

		a, err := uc.assignmentRepo.GetByNumberID(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load assignment")
		}
		if a != nil {
			return apperrors.NewConflictError(number.ErrDeleteAssignedNumber.Error())
		}

		if err := uc.numberRepo.Delete(txCtx, numberID); err != nil {
			uc.logger.Errorw("failed to delete number", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to delete number")
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	uc.logger.Infow("number deleted", "number_id", numberID)
	return nil
}
