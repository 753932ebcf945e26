package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"numbers/internal/domain/number"
	vo "numbers/internal/domain/number/valueobjects"
	"numbers/internal/shared/db"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/goroutine"
	"numbers/internal/shared/logger"
	"numbers/internal/shared/patch"
)

// UpdateNumberCommand is a partial update of a number. Fields left
// unchanged keep their stored value; AvailableAfter and Status
// distinguish an explicit null from absence.
type UpdateNumberCommand struct {
	NumberID          string
	ProviderID        patch.Field[string]
	Classification    patch.Field[string]
	Capabilities      patch.Field[[]string]
	DedicatedReceiver patch.Field[bool]
	AvailableAfter    patch.Field[time.Time]
	Status            patch.Field[string]
}

func (cmd UpdateNumberCommand) empty() bool {
	return cmd.ProviderID.IsUnchanged() &&
		cmd.Classification.IsUnchanged() &&
		cmd.Capabilities.IsUnchanged() &&
		cmd.DedicatedReceiver.IsUnchanged() &&
		cmd.AvailableAfter.IsUnchanged() &&
		cmd.Status.IsUnchanged()
}

type UpdateNumberUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	tollFree       TollFreeNotifier
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewUpdateNumberUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	tollFree TollFreeNotifier,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UpdateNumberUseCase {
	return &UpdateNumberUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		tollFree:       tollFree,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *UpdateNumberUseCase) Execute(ctx context.Context, cmd UpdateNumberCommand) (*NumberResult, error) {
	numberID, err := uuid.Parse(cmd.NumberID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid number id")
	}
	if cmd.empty() {
		return nil, apperrors.NewValidationError(number.ErrEmptyNumberUpdate.Error())
	}

	var (
		n             *number.Number
		a             *number.Assignment
		statusChanged bool
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

		a, err = uc.assignmentRepo.GetByNumberID(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load assignment")
		}
		assigned := a != nil

		if err := uc.apply(n, cmd, assigned, &statusChanged); err != nil {
			return err
		}

		if err := uc.numberRepo.Update(txCtx, n); err != nil {
			uc.logger.Errorw("failed to update number", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to update number")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("number updated", "number_id", numberID)

	if statusChanged {
		uc.notifyStatusChange(n)
	}

	return newNumberResult(n, a), nil
}

func (uc *UpdateNumberUseCase) apply(n *number.Number, cmd UpdateNumberCommand, assigned bool, statusChanged *bool) error {
	if cmd.ProviderID.HasValue() {
		raw, _ := cmd.ProviderID.Value()
		providerID, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid provider id")
		}
		if err := n.SetProviderID(providerID); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	} else if cmd.ProviderID.IsNull() {
		return apperrors.NewValidationError("provider id cannot be null")
	}

	if cmd.Classification.HasValue() {
		classification, _ := cmd.Classification.Value()
		if err := n.SetClassification(vo.Classification(classification)); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	} else if cmd.Classification.IsNull() {
		return apperrors.NewValidationError("classification cannot be null")
	}

	if cmd.Capabilities.HasValue() {
		names, _ := cmd.Capabilities.Value()
		caps, err := vo.ParseCapabilities(names)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := n.SetCapabilities(caps); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	} else if cmd.Capabilities.IsNull() {
		return apperrors.NewValidationError("capabilities cannot be null")
	}

	if cmd.DedicatedReceiver.HasValue() {
		dedicated, _ := cmd.DedicatedReceiver.Value()
		n.SetDedicatedReceiver(dedicated)
	} else if cmd.DedicatedReceiver.IsNull() {
		return apperrors.NewValidationError("dedicated receiver cannot be null")
	}

	if !cmd.AvailableAfter.IsUnchanged() {
		if err := n.ChangeAvailableAfter(cmd.AvailableAfter.Ptr(), assigned); err != nil {
			return translateNumberErr(err)
		}
	}

	if !cmd.Status.IsUnchanged() {
		var status *vo.Status
		if cmd.Status.HasValue() {
			raw, _ := cmd.Status.Value()
			s := vo.Status(raw)
			status = &s
		}
		if err := n.ChangeStatus(status, assigned); err != nil {
			return translateNumberErr(err)
		}
		*statusChanged = true
	}
	return nil
}

func (uc *UpdateNumberUseCase) notifyStatusChange(n *number.Number) {
	var status *string
	if s := n.Status(); s != nil {
		v := string(*s)
		status = &v
	}
	phoneNumber := n.PhoneNumber()

	goroutine.SafeGo(uc.logger, "status-change-notification", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := uc.tollFree.NotifyTollFreeStatusChanged(ctx, phoneNumber, status); err != nil {
			uc.logger.Warnw("failed to notify toll-free status change", "phone_number", phoneNumber, "error", err)
		}
	})
}

func translateNumberErr(err error) error {
	switch {
	case errors.Is(err, number.ErrNotUsTollFree):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, number.ErrInvalidStatusTransition),
		errors.Is(err, number.ErrAvailableAfterLocked):
		return apperrors.NewConflictError(err.Error())
	default:
		return apperrors.NewValidationError(err.Error())
	}
}
