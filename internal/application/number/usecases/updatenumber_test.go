package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numbers/internal/application/number/testutil"
	vo "numbers/internal/domain/number/valueobjects"
	apperrors "numbers/internal/shared/errors"
	"numbers/internal/shared/patch"
)

func newUpdateNumberUseCase(t *testing.T, numberRepo *testutil.MockNumberRepository, assignmentRepo *testutil.MockAssignmentRepository) (*UpdateNumberUseCase, *mockTollFreeNotifier) {
	t.Helper()
	notifier := &mockTollFreeNotifier{}
	uc := NewUpdateNumberUseCase(
		numberRepo, assignmentRepo, notifier,
		testutil.NewTestTxManager(t), testutil.NewMockLogger(),
	)
	return uc, notifier
}

func TestUpdateNumber_EmptyPatchRejected(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	numberRepo.AddNumber(n)

	uc, _ := newUpdateNumberUseCase(t, numberRepo, testutil.NewMockAssignmentRepository())

	_, err := uc.Execute(context.Background(), UpdateNumberCommand{NumberID: n.ID().String()})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestUpdateNumber_ClassificationAndCapabilities(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	numberRepo.AddNumber(n)

	uc, _ := newUpdateNumberUseCase(t, numberRepo, testutil.NewMockAssignmentRepository())

	result, err := uc.Execute(context.Background(), UpdateNumberCommand{
		NumberID:       n.ID().String(),
		Classification: patch.Set("GOLD"),
		Capabilities:   patch.Set([]string{"SMS", "TTS"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "GOLD", result.Classification)
	assert.Equal(t, []string{"SMS", "TTS"}, result.Capabilities)
}

func TestUpdateNumber_NullRejectedForRequiredFields(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	numberRepo.AddNumber(n)

	uc, _ := newUpdateNumberUseCase(t, numberRepo, testutil.NewMockAssignmentRepository())

	cases := []UpdateNumberCommand{
		{NumberID: n.ID().String(), Classification: patch.Null[string]()},
		{NumberID: n.ID().String(), Capabilities: patch.Null[[]string]()},
		{NumberID: n.ID().String(), ProviderID: patch.Null[string]()},
		{NumberID: n.ID().String(), DedicatedReceiver: patch.Null[bool]()},
	}
	for _, cmd := range cases {
		_, err := uc.Execute(context.Background(), cmd)
		assert.True(t, apperrors.IsValidationError(err))
	}
}

func TestUpdateNumber_AvailableAfterLockedWhileAssigned(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	assignmentRepo := testutil.NewMockAssignmentRepository()

	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	n.MarkAssigned()
	numberRepo.AddNumber(n)
	assignmentRepo.AddAssignment(newActiveAssignment(t, n.ID(), "V1", "A1"))

	uc, _ := newUpdateNumberUseCase(t, numberRepo, assignmentRepo)

	_, err := uc.Execute(context.Background(), UpdateNumberCommand{
		NumberID:       n.ID().String(),
		AvailableAfter: patch.Set(time.Now().UTC().Add(time.Hour)),
	})
	assert.True(t, apperrors.IsConflictError(err))

	// Null is the value an assigned number already has.
	result, err := uc.Execute(context.Background(), UpdateNumberCommand{
		NumberID:       n.ID().String(),
		AvailableAfter: patch.Null[time.Time](),
	})
	require.NoError(t, err)
	assert.Nil(t, result.AvailableAfter)
}

func TestUpdateNumber_AvailableAfterEditableWhileUnassigned(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	numberRepo.AddNumber(n)

	uc, _ := newUpdateNumberUseCase(t, numberRepo, testutil.NewMockAssignmentRepository())

	when := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	result, err := uc.Execute(context.Background(), UpdateNumberCommand{
		NumberID:       n.ID().String(),
		AvailableAfter: patch.Set(when),
	})
	require.NoError(t, err)
	require.NotNil(t, result.AvailableAfter)
	assert.True(t, result.AvailableAfter.Equal(when))
}

func TestUpdateNumber_TollFreeStatus(t *testing.T) {
	t.Run("rejected on non toll-free", func(t *testing.T) {
		numberRepo := testutil.NewMockNumberRepository()
		n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
		numberRepo.AddNumber(n)

		uc, _ := newUpdateNumberUseCase(t, numberRepo, testutil.NewMockAssignmentRepository())
		_, err := uc.Execute(context.Background(), UpdateNumberCommand{
			NumberID: n.ID().String(),
			Status:   patch.Set(string(vo.StatusAssigned)),
		})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("status requires an assignment", func(t *testing.T) {
		numberRepo := testutil.NewMockNumberRepository()
		n := newPoolNumber(t, "US", vo.NumberTypeTollFree)
		numberRepo.AddNumber(n)

		uc, _ := newUpdateNumberUseCase(t, numberRepo, testutil.NewMockAssignmentRepository())
		_, err := uc.Execute(context.Background(), UpdateNumberCommand{
			NumberID: n.ID().String(),
			Status:   patch.Set(string(vo.StatusAssigned)),
		})
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("valid transition notifies", func(t *testing.T) {
		numberRepo := testutil.NewMockNumberRepository()
		assignmentRepo := testutil.NewMockAssignmentRepository()

		n := newPoolNumber(t, "US", vo.NumberTypeTollFree)
		n.MarkAssigned()
		numberRepo.AddNumber(n)
		assignmentRepo.AddAssignment(newActiveAssignment(t, n.ID(), "V1", "A1"))

		uc, notifier := newUpdateNumberUseCase(t, numberRepo, assignmentRepo)
		result, err := uc.Execute(context.Background(), UpdateNumberCommand{
			NumberID: n.ID().String(),
			Status:   patch.Set(string(vo.StatusAssigned)),
		})
		require.NoError(t, err)
		require.NotNil(t, result.Status)
		assert.Equal(t, string(vo.StatusAssigned), *result.Status)

		waitFor(t, func() bool {
			notifier.mu.Lock()
			defer notifier.mu.Unlock()
			return len(notifier.statusChanges) == 1
		})
	})
}
