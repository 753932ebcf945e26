package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numbers/internal/application/number/testutil"
	"numbers/internal/domain/audit"
	apperrors "numbers/internal/shared/errors"
)

func seedRevision(log *testutil.MockRevisionRepository, assignmentID uuid.UUID, rt audit.RevisionType) audit.Revision {
	return log.Append(audit.Revision{
		RevisionType: rt,
		Timestamp:    time.Now().UTC(),
		AssignmentID: assignmentID,
		NumberID:     uuid.New(),
		VendorID:     "V1",
		AccountID:    "A1",
		Created:      time.Now().UTC(),
	})
}

func TestListAssignmentAudits_DefaultPageSizeAndToken(t *testing.T) {
	log := testutil.NewMockRevisionRepository()
	for i := 0; i < 51; i++ {
		seedRevision(log, uuid.New(), audit.RevisionAdd)
	}

	uc := NewListAssignmentAuditsUseCase(log, testutil.NewMockLogger())

	first, err := uc.Execute(context.Background(), ListAssignmentAuditsQuery{})
	require.NoError(t, err)
	assert.Len(t, first.Audits, 50)
	require.NotNil(t, first.NextToken)

	second, err := uc.Execute(context.Background(), ListAssignmentAuditsQuery{Token: *first.NextToken})
	require.NoError(t, err)
	assert.Len(t, second.Audits, 1)
	assert.Nil(t, second.NextToken)

	seen := map[string]bool{}
	for _, row := range append(first.Audits, second.Audits...) {
		key := row.AssignmentID
		assert.False(t, seen[key])
		seen[key] = true
	}
	assert.Len(t, seen, 51)
}

func TestListAssignmentAudits_OrderedByAssignmentThenRevisionDescending(t *testing.T) {
	log := testutil.NewMockRevisionRepository()
	assignmentID := uuid.New()
	seedRevision(log, assignmentID, audit.RevisionAdd)
	seedRevision(log, assignmentID, audit.RevisionModify)
	seedRevision(log, assignmentID, audit.RevisionDelete)

	uc := NewListAssignmentAuditsUseCase(log, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), ListAssignmentAuditsQuery{AssignmentID: assignmentID.String()})
	require.NoError(t, err)
	require.Len(t, result.Audits, 3)

	assert.Equal(t, string(audit.RevisionDelete), result.Audits[0].RevisionType)
	assert.Equal(t, string(audit.RevisionModify), result.Audits[1].RevisionType)
	assert.Equal(t, string(audit.RevisionAdd), result.Audits[2].RevisionType)
	assert.Greater(t, result.Audits[0].RevisionNumber, result.Audits[1].RevisionNumber)
}

func TestListAssignmentAudits_DeleteRowsCarryDeletionTime(t *testing.T) {
	log := testutil.NewMockRevisionRepository()
	assignmentID := uuid.New()
	seedRevision(log, assignmentID, audit.RevisionAdd)
	deleted := seedRevision(log, assignmentID, audit.RevisionDelete)

	uc := NewListAssignmentAuditsUseCase(log, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), ListAssignmentAuditsQuery{AssignmentID: assignmentID.String()})
	require.NoError(t, err)
	require.Len(t, result.Audits, 2)

	require.NotNil(t, result.Audits[0].Deleted)
	assert.Equal(t, deleted.Timestamp, *result.Audits[0].Deleted)
	assert.Nil(t, result.Audits[1].Deleted)
}

func TestListAssignmentAudits_InvalidInput(t *testing.T) {
	uc := NewListAssignmentAuditsUseCase(testutil.NewMockRevisionRepository(), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ListAssignmentAuditsQuery{Token: "%%%"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListAssignmentAuditsQuery{AssignmentID: "nope"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListAssignmentAuditsQuery{NumberID: "nope"})
	assert.True(t, apperrors.IsValidationError(err))
}
