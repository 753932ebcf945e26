package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"numbers/internal/domain/account"
	"numbers/internal/domain/number"
	"numbers/internal/shared/db"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/goroutine"
	"numbers/internal/shared/logger"
)

// ReassignNumberCommand moves a number to another account of the same
// vendor. The new owner must share a non-internal ancestor with the
// current owner.
type ReassignNumberCommand struct {
	NumberID    string
	VendorID    string
	AccountID   string
	CallbackURL *string
	Metadata    map[string]string
	Label       *string
}

type ReassignNumberUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	authorizer     Authorizer
	publisher      EventPublisher
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewReassignNumberUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	authorizer Authorizer,
	publisher EventPublisher,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *ReassignNumberUseCase {
	return &ReassignNumberUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		authorizer:     authorizer,
		publisher:      publisher,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *ReassignNumberUseCase) Execute(ctx context.Context, cmd ReassignNumberCommand) (*NumberResult, error) {
	numberID, err := uuid.Parse(cmd.NumberID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid number id")
	}
	newOwner := account.NewVendorAccountID(cmd.VendorID, cmd.AccountID)
	if newOwner.VendorID == "" || newOwner.AccountID == "" {
		return nil, apperrors.NewValidationError("vendor id and account id are required")
	}

	var (
		n        *number.Number
		replaced *number.Assignment
	)
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		n, err = uc.numberRepo.GetByIDForUpdate(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load number", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load number")
		}
		if n == nil {
			return apperrors.NewNotFoundError("number not found")
		}

		current, err := uc.assignmentRepo.GetByNumberID(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load assignment")
		}
		if current == nil {
			return apperrors.NewConflictError(number.ErrNumberNotAssigned.Error())
		}

		authorized, err := uc.authorizer.Verify(txCtx, newOwner, current.Owner())
		if err != nil {
			uc.logger.Errorw("hierarchy check failed",
				"number_id", numberID,
				"new_owner", newOwner.String(),
				"error", err,
			)
			if apperrors.IsNotFoundError(err) {
				return err
			}
			return apperrors.NewUpstreamError("account directory is unavailable")
		}
		if !authorized {
			return apperrors.NewForbiddenError(number.ErrUnauthorizedReassignment.Error())
		}

		replaced, err = number.NewAssignment(numberID, newOwner, cmd.CallbackURL, cmd.Metadata, cmd.Label)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		// The old assignment's revision history ends with a DELETE and the
		// replacement begins with an ADD, both in this transaction.
		if err := uc.assignmentRepo.Delete(txCtx, current); err != nil {
			uc.logger.Errorw("failed to remove previous assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to reassign number")
		}
		if err := uc.assignmentRepo.Create(txCtx, replaced); err != nil {
			uc.logger.Errorw("failed to create replacement assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to reassign number")
		}

		n.MarkAssigned()
		if err := uc.numberRepo.Update(txCtx, n); err != nil {
			uc.logger.Errorw("failed to update number", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to update number")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("number reassigned",
		"number_id", numberID,
		"phone_number", n.PhoneNumber(),
		"new_owner", newOwner.String(),
	)

	event := LifecycleEvent{
		Type:        EventNumberReassigned,
		NumberID:    n.ID().String(),
		PhoneNumber: n.PhoneNumber(),
		Country:     n.Country(),
		NumberType:  string(n.Type()),
		VendorID:    newOwner.VendorID,
		AccountID:   newOwner.AccountID,
		OccurredAt:  time.Now().UTC(),
	}
	goroutine.SafeGo(uc.logger, "reassign-side-effects", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warnw("failed to publish reassignment event", "number_id", event.NumberID, "error", err)
		}
	})

	return newNumberResult(n, replaced), nil
}
