package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"numbers/internal/domain/account"
	"numbers/internal/domain/number"
	"numbers/internal/shared/db"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/goroutine"
	"numbers/internal/shared/logger"
)

// AssignNumberCommand claims a number for a vendor account.
type AssignNumberCommand struct {
	NumberID    string
	VendorID    string
	AccountID   string
	CallbackURL *string
	Metadata    map[string]string
	Label       *string
}

type AssignNumberUseCase struct {
	numberRepo     number.Repository
	assignmentRepo number.AssignmentRepository
	graceChecker   GraceChecker
	publisher      EventPublisher
	tollFree       TollFreeNotifier
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewAssignNumberUseCase(
	numberRepo number.Repository,
	assignmentRepo number.AssignmentRepository,
	graceChecker GraceChecker,
	publisher EventPublisher,
	tollFree TollFreeNotifier,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *AssignNumberUseCase {
	return &AssignNumberUseCase{
		numberRepo:     numberRepo,
		assignmentRepo: assignmentRepo,
		graceChecker:   graceChecker,
		publisher:      publisher,
		tollFree:       tollFree,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *AssignNumberUseCase) Execute(ctx context.Context, cmd AssignNumberCommand) (*NumberResult, error) {
	numberID, err := uuid.Parse(cmd.NumberID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid number id")
	}
	owner := account.NewVendorAccountID(cmd.VendorID, cmd.AccountID)
	if owner.VendorID == "" || owner.AccountID == "" {
		return nil, apperrors.NewValidationError("vendor id and account id are required")
	}

	var (
		n *number.Number
		a *number.Assignment
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

		existing, err := uc.assignmentRepo.GetByNumberID(txCtx, numberID)
		if err != nil {
			uc.logger.Errorw("failed to load assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to load assignment")
		}
		if existing != nil || n.AvailableAfter() == nil {
			return apperrors.NewConflictError(number.ErrNumberAlreadyAssigned.Error())
		}

		if !n.IsAvailableAt(time.Now().UTC()) {
			claimable, err := uc.graceChecker.IsClaimable(txCtx, n, owner)
			if err != nil {
				uc.logger.Errorw("grace owner check failed", "number_id", numberID, "error", err)
				return apperrors.NewUpstreamError("ownership history is unavailable")
			}
			if !claimable {
				return apperrors.NewConflictError(number.ErrNumberNotAvailable.Error())
			}
		}

		a, err = number.NewAssignment(numberID, owner, cmd.CallbackURL, cmd.Metadata, cmd.Label)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := uc.assignmentRepo.Create(txCtx, a); err != nil {
			// Loser of a concurrent assign races into the unique index.
			if errors.Is(err, number.ErrNumberAlreadyAssigned) {
				return apperrors.NewConflictError(number.ErrNumberAlreadyAssigned.Error())
			}
			uc.logger.Errorw("failed to create assignment", "number_id", numberID, "error", err)
			return apperrors.NewInternalError("failed to create assignment")
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

	uc.logger.Infow("number assigned",
		"number_id", numberID,
		"phone_number", n.PhoneNumber(),
		"owner", owner.String(),
	)
	uc.afterAssign(n, owner)

	return newNumberResult(n, a), nil
}

// afterAssign fires the fire-and-forget side effects. Failures are logged
// and never affect the committed assignment.
func (uc *AssignNumberUseCase) afterAssign(n *number.Number, owner account.VendorAccountID) {
	phoneNumber := n.PhoneNumber()
	event := LifecycleEvent{
		Type:        EventNumberAssigned,
		NumberID:    n.ID().String(),
		PhoneNumber: phoneNumber,
		Country:     n.Country(),
		NumberType:  string(n.Type()),
		VendorID:    owner.VendorID,
		AccountID:   owner.AccountID,
		OccurredAt:  time.Now().UTC(),
	}
	usTollFree := n.IsUSTollFree()

	goroutine.SafeGo(uc.logger, "assign-side-effects", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warnw("failed to publish assignment event", "number_id", event.NumberID, "error", err)
		}
		if usTollFree {
			if err := uc.tollFree.NotifyTollFreeAssigned(ctx, phoneNumber, owner); err != nil {
				uc.logger.Warnw("failed to notify toll-free assignment", "phone_number", phoneNumber, "error", err)
			}
		}
	})
}
