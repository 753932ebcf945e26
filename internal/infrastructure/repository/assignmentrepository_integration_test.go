package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"numbers/internal/domain/audit"
	"numbers/internal/domain/number"
	"numbers/internal/infrastructure/persistence/models"
)

func revisionRows(t *testing.T, db *gorm.DB, assignmentID uuid.UUID) []models.AssignmentRevisionModel {
	var rows []models.AssignmentRevisionModel
	err := db.
		Where("assignment_id = ?", assignmentID).
		Order("revision_number ASC").
		Find(&rows).Error
	require.NoError(t, err)
	return rows
}

func TestAssignmentRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	numberID := uuid.New()
	a := createTestAssignment(t, numberID, "vendor-1", "acct-1")
	require.NoError(t, repo.Create(ctx, a))

	found, err := repo.GetByNumberID(ctx, numberID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, a.ID(), found.ID())
	assert.Equal(t, "vendor-1", found.VendorID())
	assert.Equal(t, "acct-1", found.AccountID())
	assert.Equal(t, map[string]string{"team": "growth"}, found.Metadata())

	rows := revisionRows(t, db, a.ID())
	require.Len(t, rows, 1)
	assert.Equal(t, string(audit.RevisionAdd), rows[0].RevisionType)
	assert.Equal(t, numberID, rows[0].NumberID)
	assert.False(t, rows[0].Timestamp.IsZero())
}

func TestAssignmentRepository_Create_NumberAlreadyAssigned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	numberID := uuid.New()
	first := createTestAssignment(t, numberID, "vendor-1", "acct-1")
	require.NoError(t, repo.Create(ctx, first))

	second := createTestAssignment(t, numberID, "vendor-1", "acct-2")
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, number.ErrNumberAlreadyAssigned)

	// The failed insert must not leave a revision behind.
	assert.Empty(t, revisionRows(t, db, second.ID()))
}

func TestAssignmentRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	numberID := uuid.New()
	a := createTestAssignment(t, numberID, "vendor-1", "acct-1")
	callback := "https://example.com/hooks/inbound"
	require.NoError(t, a.SetCallbackURL(&callback))
	require.NoError(t, repo.Create(ctx, a))

	label := "campaign"
	a.SetLabel(&label)
	require.NoError(t, a.SetCallbackURL(nil))
	a.SetMetadata(nil)
	require.NoError(t, repo.Update(ctx, a))

	found, err := repo.GetByNumberID(ctx, numberID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.Label())
	assert.Equal(t, "campaign", *found.Label())
	assert.Nil(t, found.CallbackURL(), "cleared callback must persist as NULL")
	assert.Empty(t, found.Metadata())

	rows := revisionRows(t, db, a.ID())
	require.Len(t, rows, 2)
	assert.Equal(t, string(audit.RevisionAdd), rows[0].RevisionType)
	assert.Equal(t, string(audit.RevisionModify), rows[1].RevisionType)
	assert.Greater(t, rows[1].RevisionNumber, rows[0].RevisionNumber)
}

func TestAssignmentRepository_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db)

	a := createTestAssignment(t, uuid.New(), "vendor-1", "acct-1")
	err := repo.Update(context.Background(), a)
	assert.ErrorIs(t, err, number.ErrNumberNotAssigned)
}

func TestAssignmentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	numberID := uuid.New()
	a := createTestAssignment(t, numberID, "vendor-1", "acct-1")
	require.NoError(t, repo.Create(ctx, a))

	require.NoError(t, repo.Delete(ctx, a))

	found, err := repo.GetByNumberID(ctx, numberID)
	require.NoError(t, err)
	assert.Nil(t, found)

	rows := revisionRows(t, db, a.ID())
	require.Len(t, rows, 2)
	assert.Equal(t, string(audit.RevisionDelete), rows[1].RevisionType)

	assert.ErrorIs(t, repo.Delete(ctx, a), number.ErrNumberNotAssigned)
}

func TestAssignmentRepository_GetByNumberIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	first := createTestAssignment(t, uuid.New(), "vendor-1", "acct-1")
	second := createTestAssignment(t, uuid.New(), "vendor-1", "acct-2")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	unassigned := uuid.New()
	found, err := repo.GetByNumberIDs(ctx, []uuid.UUID{first.NumberID(), second.NumberID(), unassigned})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, first.ID(), found[first.NumberID()].ID())
	assert.Equal(t, second.ID(), found[second.NumberID()].ID())
	assert.NotContains(t, found, unassigned)

	empty, err := repo.GetByNumberIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
