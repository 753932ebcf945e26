package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"numbers/internal/domain/number"
	"numbers/internal/shared/db"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/goroutine"
	"numbers/internal/shared/logger"
)

// DisassociateNumberCommand releases a number from its current owner. The
// number stays reserved for that owner for the grace period.
type DisassociateNumberCommand struct {
	NumberID string
}

type DisassociateNumberUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	publisher      EventPublisher
	txMgr          *db.TransactionManager
	gracePeriod    time.Duration
	logger         logger.Interface
}

func NewDisassociateNumberUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	publisher EventPublisher,
	txMgr *db.TransactionManager,
	gracePeriod time.Duration,
	logger logger.Interface,
) *DisassociateNumberUseCase {
	return &DisassociateNumberUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		publisher:      publisher,
		txMgr:          txMgr,
		gracePeriod:    gracePeriod,
		logger:         logger,
	}
}

func (uc *DisassociateNumberUseCase) Execute(ctx context.Context, cmd DisassociateNumberCommand) (*NumberResult, error) {
	numberID, err := uuid.Parse(cmd.NumberID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid number id")
	}

	var (
		n        *number.Number
		previous *number.Assignment
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

		previous, err = uc.assignmentRepo.GetByNumberID(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load assignment")
		}
		if previous == nil {
			return apperrors.NewConflictError(number.ErrNumberNotAssigned.Error())
		}

		if err := uc.assignmentRepo.Delete(txCtx, previous); err != nil {
			uc.logger.Errorw("failed to delete assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to disassociate number")
		}

		n.MarkDisassociated(uc.gracePeriod)
		if err := uc.numberRepo.Update(txCtx, n); err != nil {
			uc.logger.Errorw("failed to update number", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to update number")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("number disassociated",
		"number_id", numberID,
		"phone_number", n.PhoneNumber(),
		"previous_owner", previous.Owner().String(),
		"available_after", n.AvailableAfter(),
	)

	event := LifecycleEvent{
		Type:        EventNumberDisassociated,
		NumberID:    n.ID().String(),
		PhoneNumber: n.PhoneNumber(),
		Country:     n.Country(),
		NumberType:  string(n.Type()),
		VendorID:    previous.VendorID(),
		AccountID:   previous.AccountID(),
		OccurredAt:  time.Now().UTC(),
	}
	goroutine.SafeGo(uc.logger, "disassociate-side-effects", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warnw("failed to publish disassociation event", "number_id", event.NumberID, "error", err)
		}
	})

	return newNumberResult(n, nil), nil
}
