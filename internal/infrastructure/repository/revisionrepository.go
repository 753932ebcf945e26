package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"numbers/internal/domain/audit"
	"numbers/internal/infrastructure/persistence/mappers"
	"numbers/internal/infrastructure/persistence/models"
	"numbers/internal/shared/db"
)

// RevisionRepository reads the assignment revision log. Pagination is
// keyset based on (assignment_id, revision_number) so pages stay stable
// while new revisions are appended.
type RevisionRepository struct {
	db     *gorm.DB
	mapper mappers.RevisionMapper
}

func NewRevisionRepository(database *gorm.DB) *RevisionRepository {
	return &RevisionRepository{
		db:     database,
		mapper: mappers.NewRevisionMapper(),
	}
}

func (r *RevisionRepository) List(ctx context.Context, filter audit.ListFilter) ([]audit.Revision, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AssignmentRevisionModel{})

	if filter.AssignmentID != nil {
		query = query.Where("assignment_id = ?", *filter.AssignmentID)
	}
	if filter.NumberID != nil {
		query = query.Where("number_id = ?", *filter.NumberID)
	}
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.AccountID != "" {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created < ?", *filter.CreatedBefore)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created > ?", *filter.CreatedAfter)
	}

	// Deletion bounds only make sense on DELETE revisions, whose log
	// timestamp is the deletion time.
	if filter.DeletedBefore != nil || filter.DeletedAfter != nil {
		query = query.Where("revision_type = ?", string(audit.RevisionDelete))
		if filter.DeletedBefore != nil {
			query = query.Where("timestamp < ?", *filter.DeletedBefore)
		}
		if filter.DeletedAfter != nil {
			query = query.Where("timestamp > ?", *filter.DeletedAfter)
		}
	}

	if c := filter.Cursor; c != nil {
		query = query.Where(
			"assignment_id < ? OR (assignment_id = ? AND revision_number <= ?)",
			c.LastAssignmentID, c.LastAssignmentID, c.LastRevisionNumber,
		)
	}

	query = query.Order("assignment_id DESC, revision_number DESC")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize + 1)
	}

	var revisionModels []*models.AssignmentRevisionModel
	if err := query.Find(&revisionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}

	return r.mapper.ToRevisions(revisionModels)
}

func (r *RevisionRepository) LatestAddByNumberID(ctx context.Context, numberID uuid.UUID) (*audit.Revision, error) {
	var model models.AssignmentRevisionModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("number_id = ? AND revision_type = ?", numberID, string(audit.RevisionAdd)).
		Order("revision_number DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest ADD revision: %w", err)
	}

	revision, err := r.mapper.ToRevision(&model)
	if err != nil {
		return nil, err
	}

	return &revision, nil
}
