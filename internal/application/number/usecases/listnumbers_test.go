package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numbers/internal/application/number/testutil"
	"numbers/internal/domain/number"
	vo "numbers/internal/domain/number/valueobjects"
	apperrors "numbers/internal/shared/errors"
)

func seedPool(t *testing.T, repo *testutil.MockNumberRepository, count int) []*number.Number {
	t.Helper()
	numbers := make([]*number.Number, 0, count)
	for i := 0; i < count; i++ {
		n, err := number.NewNumber(
			fmt.Sprintf("+614915701%02d", i),
			uuid.New(),
			"AU",
			vo.NumberTypeMobile,
			vo.ClassificationBronze,
			vo.NewCapabilities(vo.CapabilitySMS),
			false,
		)
		require.NoError(t, err)
		repo.AddNumber(n)
		numbers = append(numbers, n)
	}
	return numbers
}

func TestListNumbers_Pagination(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	assignmentRepo := testutil.NewMockAssignmentRepository()
	seedPool(t, numberRepo, 5)

	uc := NewListNumbersUseCase(numberRepo, assignmentRepo, testutil.NewMockLogger())

	first, err := uc.Execute(context.Background(), ListNumbersQuery{PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, first.Numbers, 3)
	require.NotNil(t, first.NextToken)

	second, err := uc.Execute(context.Background(), ListNumbersQuery{PageSize: 3, Token: *first.NextToken})
	require.NoError(t, err)
	assert.Len(t, second.Numbers, 2)
	assert.Nil(t, second.NextToken)

	seen := map[string]bool{}
	for _, r := range append(first.Numbers, second.Numbers...) {
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestListNumbers_AssignedFilterAndEmbeddedAssignment(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	assignmentRepo := testutil.NewMockAssignmentRepository()
	pool := seedPool(t, numberRepo, 3)

	assignedNumber := pool[0]
	assignedNumber.MarkAssigned()
	assignmentRepo.AddAssignment(newActiveAssignment(t, assignedNumber.ID(), "V1", "A1"))

	uc := NewListNumbersUseCase(numberRepo, assignmentRepo, testutil.NewMockLogger())

	assigned := true
	result, err := uc.Execute(context.Background(), ListNumbersQuery{Assigned: &assigned})
	require.NoError(t, err)
	require.Len(t, result.Numbers, 1)
	require.NotNil(t, result.Numbers[0].Assignment)
	assert.Equal(t, "A1", result.Numbers[0].Assignment.AccountID)

	assigned = false
	result, err = uc.Execute(context.Background(), ListNumbersQuery{Assigned: &assigned})
	require.NoError(t, err)
	assert.Len(t, result.Numbers, 2)
}

func TestListNumbers_InvalidFilters(t *testing.T) {
	uc := NewListNumbersUseCase(
		testutil.NewMockNumberRepository(), testutil.NewMockAssignmentRepository(), testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), ListNumbersQuery{Classification: "PLATINUM"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListNumbersQuery{Capability: "FAX"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListNumbersQuery{Token: "not-a-uuid"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestListNumberAssignments_RequiresVendor(t *testing.T) {
	uc := NewListNumberAssignmentsUseCase(
		testutil.NewMockNumberRepository(), testutil.NewMockAssignmentRepository(), testutil.NewMockLogger(),
	)
	_, err := uc.Execute(context.Background(), ListNumberAssignmentsQuery{})
	assert.True(t, apperrors.IsValidationError(err))
}
