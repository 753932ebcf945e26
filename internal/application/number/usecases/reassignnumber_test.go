package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numbers/internal/application/number/testutil"
	"numbers/internal/domain/account"
	"numbers/internal/domain/audit"
	vo "numbers/internal/domain/number/valueobjects"
	apperrors "numbers/internal/shared/errors"
)

type failingAuthorizer struct{ err error }

func (f failingAuthorizer) Verify(ctx context.Context, newOwner, currentOwner account.VendorAccountID) (bool, error) {
	return false, f.err
}

func TestReassignNumber_Success(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	revisionLog := testutil.NewMockRevisionRepository()
	assignmentRepo := testutil.NewMockAssignmentRepository().WithRevisionLog(revisionLog)
	publisher := &mockPublisher{}

	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	n.MarkAssigned()
	numberRepo.AddNumber(n)
	assignmentRepo.AddAssignment(newActiveAssignment(t, n.ID(), "V1", "AccountM11"))

	uc := NewReassignNumberUseCase(
		numberRepo, assignmentRepo, allowAll{}, publisher,
		testutil.NewTestTxManager(t), testutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), ReassignNumberCommand{
		NumberID:  n.ID().String(),
		VendorID:  "V1",
		AccountID: "AccountM12",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Assignment)
	assert.Equal(t, "AccountM12", result.Assignment.AccountID)
	assert.Nil(t, result.AvailableAfter)

	// The replacement is recorded as DELETE of the old assignment
	// followed by ADD of the new one.
	revs := revisionLog.Revisions()
	require.Len(t, revs, 2)
	assert.Equal(t, audit.RevisionDelete, revs[0].RevisionType)
	assert.Equal(t, "AccountM11", revs[0].AccountID)
	assert.Equal(t, audit.RevisionAdd, revs[1].RevisionType)
	assert.Equal(t, "AccountM12", revs[1].AccountID)

	waitFor(t, func() bool { return len(publisher.published()) == 1 })
	assert.Equal(t, EventNumberReassigned, publisher.published()[0].Type)
}

func TestReassignNumber_Unauthorized(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	assignmentRepo := testutil.NewMockAssignmentRepository()

	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	n.MarkAssigned()
	numberRepo.AddNumber(n)
	assignmentRepo.AddAssignment(newActiveAssignment(t, n.ID(), "V1", "AccountM1"))

	uc := NewReassignNumberUseCase(
		numberRepo, assignmentRepo, denyAll{}, &mockPublisher{},
		testutil.NewTestTxManager(t), testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), ReassignNumberCommand{
		NumberID:  n.ID().String(),
		VendorID:  "V1",
		AccountID: "AccountM2",
	})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)

	// The original owner keeps the assignment.
	current, getErr := assignmentRepo.GetByNumberID(context.Background(), n.ID())
	require.NoError(t, getErr)
	require.NotNil(t, current)
	assert.Equal(t, "AccountM1", current.AccountID())
}

func TestReassignNumber_NotAssigned(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	numberRepo.AddNumber(n)

	uc := NewReassignNumberUseCase(
		numberRepo, testutil.NewMockAssignmentRepository(), allowAll{}, &mockPublisher{},
		testutil.NewTestTxManager(t), testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), ReassignNumberCommand{
		NumberID:  n.ID().String(),
		VendorID:  "V1",
		AccountID: "A2",
	})
	assert.True(t, apperrors.IsConflictError(err))
}

func TestReassignNumber_DirectoryFailureAborts(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	assignmentRepo := testutil.NewMockAssignmentRepository()

	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	n.MarkAssigned()
	numberRepo.AddNumber(n)
	assignmentRepo.AddAssignment(newActiveAssignment(t, n.ID(), "V1", "A1"))

	uc := NewReassignNumberUseCase(
		numberRepo, assignmentRepo,
		failingAuthorizer{err: errors.New("directory timeout")}, &mockPublisher{},
		testutil.NewTestTxManager(t), testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), ReassignNumberCommand{
		NumberID:  n.ID().String(),
		VendorID:  "V1",
		AccountID: "A2",
	})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
}

func TestReassignNumber_UnknownAccountSurfacesNotFound(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	assignmentRepo := testutil.NewMockAssignmentRepository()

	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	n.MarkAssigned()
	numberRepo.AddNumber(n)
	assignmentRepo.AddAssignment(newActiveAssignment(t, n.ID(), "V1", "A1"))

	uc := NewReassignNumberUseCase(
		numberRepo, assignmentRepo,
		failingAuthorizer{err: apperrors.NewNotFoundError("account not found")}, &mockPublisher{},
		testutil.NewTestTxManager(t), testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), ReassignNumberCommand{
		NumberID:  n.ID().String(),
		VendorID:  "V1",
		AccountID: "A2",
	})
	assert.True(t, apperrors.IsNotFoundError(err))
}
