package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numbers/internal/domain/audit"
)

func TestRevisionRepository_List_Ordering(t *testing.T) {
	db := setupTestDB(t)
	assignments := NewAssignmentRepository(db)
	repo := NewRevisionRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		a := createTestAssignment(t, uuid.New(), "vendor-1", "acct-1")
		require.NoError(t, assignments.Create(ctx, a))
		label := "updated"
		a.SetLabel(&label)
		require.NoError(t, assignments.Update(ctx, a))
	}

	rows, err := repo.List(ctx, audit.ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.AssignmentID == cur.AssignmentID {
			assert.Greater(t, prev.RevisionNumber, cur.RevisionNumber)
		} else {
			assert.True(t, prev.AssignmentID.String() > cur.AssignmentID.String(),
				"assignment ids must descend")
		}
	}
}

func TestRevisionRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	assignments := NewAssignmentRepository(db)
	repo := NewRevisionRepository(db)
	ctx := context.Background()

	kept := createTestAssignment(t, uuid.New(), "vendor-1", "acct-1")
	require.NoError(t, assignments.Create(ctx, kept))

	released := createTestAssignment(t, uuid.New(), "vendor-2", "acct-9")
	require.NoError(t, assignments.Create(ctx, released))
	require.NoError(t, assignments.Delete(ctx, released))

	t.Run("by assignment id", func(t *testing.T) {
		id := kept.ID()
		rows, err := repo.List(ctx, audit.ListFilter{AssignmentID: &id})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, audit.RevisionAdd, rows[0].RevisionType)
	})

	t.Run("by number id", func(t *testing.T) {
		id := released.NumberID()
		rows, err := repo.List(ctx, audit.ListFilter{NumberID: &id})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("by owner", func(t *testing.T) {
		rows, err := repo.List(ctx, audit.ListFilter{VendorID: "vendor-2", AccountID: "acct-9"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)

		rows, err = repo.List(ctx, audit.ListFilter{VendorID: "vendor-3"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("deleted bounds restrict to DELETE revisions", func(t *testing.T) {
		until := time.Now().Add(time.Minute)
		rows, err := repo.List(ctx, audit.ListFilter{DeletedBefore: &until})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, audit.RevisionDelete, rows[0].RevisionType)
		assert.Equal(t, released.ID(), rows[0].AssignmentID)

		since := time.Now().Add(time.Minute)
		rows, err = repo.List(ctx, audit.ListFilter{DeletedAfter: &since})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("created bounds", func(t *testing.T) {
		before := time.Now().Add(-time.Minute)
		rows, err := repo.List(ctx, audit.ListFilter{CreatedBefore: &before})
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = repo.List(ctx, audit.ListFilter{CreatedAfter: &before})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})
}

func TestRevisionRepository_List_KeysetPagination(t *testing.T) {
	db := setupTestDB(t)
	assignments := NewAssignmentRepository(db)
	repo := NewRevisionRepository(db)
	ctx := context.Background()

	a := createTestAssignment(t, uuid.New(), "vendor-1", "acct-1")
	require.NoError(t, assignments.Create(ctx, a))
	for i := 0; i < 50; i++ {
		label := "spin"
		a.SetLabel(&label)
		require.NoError(t, assignments.Update(ctx, a))
	}

	rows, err := repo.List(ctx, audit.ListFilter{PageSize: 50})
	require.NoError(t, err)
	require.Len(t, rows, 51, "one extra row signals a following page")

	next, err := repo.List(ctx, audit.ListFilter{
		PageSize: 50,
		Cursor: &audit.Cursor{
			LastAssignmentID:   rows[50].AssignmentID,
			LastRevisionNumber: rows[50].RevisionNumber,
		},
	})
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, rows[50].RevisionNumber, next[0].RevisionNumber)
	assert.Equal(t, audit.RevisionAdd, next[0].RevisionType)
}

func TestRevisionRepository_LatestAddByNumberID(t *testing.T) {
	db := setupTestDB(t)
	assignments := NewAssignmentRepository(db)
	repo := NewRevisionRepository(db)
	ctx := context.Background()

	numberID := uuid.New()

	latest, err := repo.LatestAddByNumberID(ctx, numberID)
	require.NoError(t, err)
	assert.Nil(t, latest, "a number with no history has no latest ADD")

	first := createTestAssignment(t, numberID, "vendor-1", "acct-1")
	require.NoError(t, assignments.Create(ctx, first))
	require.NoError(t, assignments.Delete(ctx, first))

	second := createTestAssignment(t, numberID, "vendor-1", "acct-2")
	require.NoError(t, assignments.Create(ctx, second))
	require.NoError(t, assignments.Delete(ctx, second))

	latest, err = repo.LatestAddByNumberID(ctx, numberID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, audit.RevisionAdd, latest.RevisionType)
	assert.Equal(t, "acct-2", latest.AccountID)
	assert.Equal(t, second.ID(), latest.AssignmentID)
}
