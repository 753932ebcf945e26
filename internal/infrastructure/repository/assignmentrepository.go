package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"numbers/internal/domain/audit"
	"numbers/internal/domain/number"
	"numbers/internal/infrastructure/persistence/mappers"
	"numbers/internal/infrastructure/persistence/models"
	"numbers/internal/shared/db"
)

// AssignmentRepository persists active assignments and appends a revision
// row for every mutation inside the caller's transaction. The unique index
// on number_id is the last line of defense against two transactions
// assigning the same number.
type AssignmentRepository struct {
	db             *gorm.DB
	mapper         mappers.AssignmentMapper
	revisionMapper mappers.RevisionMapper
}

func NewAssignmentRepository(database *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{
		db:             database,
		mapper:         mappers.NewAssignmentMapper(),
		revisionMapper: mappers.NewRevisionMapper(),
	}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *number.Assignment) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return number.ErrNumberAlreadyAssigned
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return r.appendRevision(tx, a, audit.RevisionAdd)
}

func (r *AssignmentRepository) Update(ctx context.Context, a *number.Assignment) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)

	// Select the mutable columns explicitly so clearing a field writes
	// NULL instead of being skipped as a zero value.
	result := tx.
		Model(&models.AssignmentModel{}).
		Where("id = ?", model.ID).
		Select("callback_url", "metadata", "label").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return number.ErrNumberNotAssigned
	}

	return r.appendRevision(tx, a, audit.RevisionModify)
}

func (r *AssignmentRepository) Delete(ctx context.Context, a *number.Assignment) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Where("id = ?", a.ID()).Delete(&models.AssignmentModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return number.ErrNumberNotAssigned
	}

	return r.appendRevision(tx, a, audit.RevisionDelete)
}

func (r *AssignmentRepository) GetByNumberID(ctx context.Context, numberID uuid.UUID) (*number.Assignment, error) {
	var model models.AssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number_id = ?", numberID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *AssignmentRepository) GetByNumberIDs(ctx context.Context, numberIDs []uuid.UUID) (map[uuid.UUID]*number.Assignment, error) {
	assignments := make(map[uuid.UUID]*number.Assignment, len(numberIDs))
	if len(numberIDs) == 0 {
		return assignments, nil
	}

	var assignmentModels []*models.AssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number_id IN ?", numberIDs).Find(&assignmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find assignments: %w", err)
	}

	for _, model := range assignmentModels {
		a, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, err
		}
		assignments[a.NumberID()] = a
	}

	return assignments, nil
}

func (r *AssignmentRepository) appendRevision(tx *gorm.DB, a *number.Assignment, revisionType audit.RevisionType) error {
	revision := r.revisionMapper.FromAssignment(a, revisionType)
	revision.Timestamp = time.Now().UTC()

	if err := tx.Create(revision).Error; err != nil {
		return fmt.Errorf("failed to append %s revision: %w", revisionType, err)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
