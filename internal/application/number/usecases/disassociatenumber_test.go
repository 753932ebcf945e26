package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numbers/internal/application/number/testutil"
	"numbers/internal/domain/audit"
	vo "numbers/internal/domain/number/valueobjects"
	apperrors "numbers/internal/shared/errors"
)

func TestDisassociateNumber_Success(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	revisionLog := testutil.NewMockRevisionRepository()
	assignmentRepo := testutil.NewMockAssignmentRepository().WithRevisionLog(revisionLog)
	publisher := &mockPublisher{}

	n := newPoolNumber(t, "US", vo.NumberTypeTollFree)
	n.MarkAssigned()
	n.SetDedicatedReceiver(true)
	numberRepo.AddNumber(n)
	assignmentRepo.AddAssignment(newActiveAssignment(t, n.ID(), "V1", "A1"))

	gracePeriod := 30 * 24 * time.Hour
	uc := NewDisassociateNumberUseCase(
		numberRepo, assignmentRepo, publisher,
		testutil.NewTestTxManager(t), gracePeriod, testutil.NewMockLogger(),
	)

	before := time.Now().UTC()
	result, err := uc.Execute(context.Background(), DisassociateNumberCommand{NumberID: n.ID().String()})
	require.NoError(t, err)

	require.NotNil(t, result.AvailableAfter)
	assert.False(t, result.AvailableAfter.Before(before.Add(gracePeriod)))
	assert.False(t, result.DedicatedReceiver)
	assert.Nil(t, result.Status)
	assert.Nil(t, result.Assignment)

	active, getErr := assignmentRepo.GetByNumberID(context.Background(), n.ID())
	require.NoError(t, getErr)
	assert.Nil(t, active)

	revs := revisionLog.Revisions()
	require.Len(t, revs, 1)
	assert.Equal(t, audit.RevisionDelete, revs[0].RevisionType)

	waitFor(t, func() bool { return len(publisher.published()) == 1 })
	event := publisher.published()[0]
	assert.Equal(t, EventNumberDisassociated, event.Type)
	assert.Equal(t, "V1", event.VendorID)
	assert.Equal(t, "A1", event.AccountID)
}

func TestDisassociateNumber_NotAssigned(t *testing.T) {
	numberRepo := testutil.NewMockNumberRepository()
	n := newPoolNumber(t, "AU", vo.NumberTypeMobile)
	numberRepo.AddNumber(n)

	uc := NewDisassociateNumberUseCase(
		numberRepo, testutil.NewMockAssignmentRepository(), &mockPublisher{},
		testutil.NewTestTxManager(t), 30*24*time.Hour, testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), DisassociateNumberCommand{NumberID: n.ID().String()})
	assert.True(t, apperrors.IsConflictError(err))
}

func TestDisassociateNumber_NotFound(t *testing.T) {
	uc := NewDisassociateNumberUseCase(
		testutil.NewMockNumberRepository(), testutil.NewMockAssignmentRepository(), &mockPublisher{},
		testutil.NewTestTxManager(t), 30*24*time.Hour, testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), DisassociateNumberCommand{NumberID: "16f7c0d7-3a4e-4b61-9bd6-a4a8063f9d42"})
	assert.True(t, apperrors.IsNotFoundError(err))
}
