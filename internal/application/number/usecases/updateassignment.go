package usecases

import (
	"context"

	"github.com/google/uuid"

	"numbers/internal/domain/number"
	"numbers/internal/shared/db"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/logger"
	"numbers/internal/shared/patch"
)

// UpdateAssignmentCommand is a partial update of a number's active
// assignment. Every field is nullable: an explicit null clears it.
type UpdateAssignmentCommand struct {
	NumberID    string
	CallbackURL patch.Field[string]
	Metadata    patch.Field[map[string]string]
	Label       patch.Field[string]
}

func (cmd UpdateAssignmentCommand) empty() bool {
	return cmd.CallbackURL.IsUnchanged() &&
		cmd.Metadata.IsUnchanged() &&
		cmd.Label.IsUnchanged()
}

type UpdateAssignmentUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewUpdateAssignmentUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UpdateAssignmentUseCase {
	return &UpdateAssignmentUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *UpdateAssignmentUseCase) Execute(ctx context.Context, cmd UpdateAssignmentCommand) (*AssignmentResult, error) {
	numberID, err := uuid.Parse(cmd.NumberID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid number id")
	}
	if cmd.empty() {
		return nil, apperrors.NewValidationError(number.ErrEmptyAssignmentUpdate.Error())
	}

	var a *number.Assignment
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		n, err := uc.numberRepo.GetByIDForUpdate(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load number", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load number")
		}
		if n == nil {
			return apperrors.NewNotFoundError("number not found")
		}

		a, err = uc.assignmentRepo.GetByNumberID(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load assignment")
		}
		if a == nil {
			return apperrors.NewConflictError(number.ErrNumberNotAssigned.Error())
		}

		if !cmd.CallbackURL.IsUnchanged() {
			if err := a.SetCallbackURL(cmd.CallbackURL.Ptr()); err != nil {
				return apperrors.NewValidationError(err.Error())
			}
		}
		if !cmd.Metadata.IsUnchanged() {
			metadata, _ := cmd.Metadata.Value()
			a.SetMetadata(metadata)
		}
		if !cmd.Label.IsUnchanged() {
			a.SetLabel(cmd.Label.Ptr())
		}

		if err := uc.assignmentRepo.Update(txCtx, a); err != nil {
			uc.logger.Errorw("failed to update assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to update assignment")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("assignment updated", "number_id", numberID, "assignment_id", a.ID())
	return newAssignmentResult(a), nil
}
