package usecases

import (
	"context"

	"github.com/google/uuid"

	"numbers/internal/domain/number"
	vo "numbers/internal/domain/number/valueobjects"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/logger"
)

// RegisterNumberCommand describes a number entering the platform pool.
type RegisterNumberCommand struct {
	PhoneNumber       string
	ProviderID        string
	Country           string
	Type              string
	Classification    string
	Capabilities      []string
	DedicatedReceiver bool
}

type RegisterNumberUseCase struct {
	numberRepo number.Repository
	logger     logger.Interface
}

func NewRegisterNumberUseCase(numberRepo number.Repository, logger logger.Interface) *RegisterNumberUseCase {
	return &RegisterNumberUseCase{numberRepo: numberRepo, logger: logger}
}

func (uc *RegisterNumberUseCase) Execute(ctx context.Context, cmd RegisterNumberCommand) (*NumberResult, error) {
	providerID, err := uuid.Parse(cmd.ProviderID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid provider id")
	}

	caps, err := vo.ParseCapabilities(cmd.Capabilities)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	n, err := number.NewNumber(
		cmd.PhoneNumber,
		providerID,
		cmd.Country,
		vo.NumberType(cmd.Type),
		vo.Classification(cmd.Classification),
		caps,
		cmd.DedicatedReceiver,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.numberRepo.Create(ctx, n); err != nil {
		uc.logger.Errorw("failed to register number", "phone_number", cmd.PhoneNumber, "error", err)
		return nil, apperrors.NewInternalError("failed to register number")
	}

	uc.logger.Infow("number registered", "number_id", n.ID(), "phone_number", n.PhoneNumber())
	return newNumberResult(n, nil), nil
}
