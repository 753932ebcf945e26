package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"numbers/internal/domain/number"
	"numbers/internal/infrastructure/persistence/mappers"
	"numbers/internal/infrastructure/persistence/models"
	"numbers/internal/shared/db"
)

type NumberRepository struct {
	db     *gorm.DB
	mapper mappers.NumberMapper
}

func NewNumberRepository(database *gorm.DB) *NumberRepository {
	return &NumberRepository{
		db:     database,
		mapper: mappers.NewNumberMapper(),
	}
}

func (r *NumberRepository) Create(ctx context.Context, n *number.Number) error {
	model, err := r.mapper.ToModel(n)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create number: %w", err)
	}

	return nil
}

func (r *NumberRepository) GetByID(ctx context.Context, id uuid.UUID) (*number.Number, error) {
	var model models.NumberModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find number: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *NumberRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*number.Number, error) {
	var model models.NumberModel
	tx := db.GetTxFromContext(ctx, r.db)

	// SQLite locks the whole database per transaction, so row locking
	// only applies on engines that understand it.
	query := tx
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := query.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find number for update: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *NumberRepository) Update(ctx context.Context, n *number.Number) error {
	model, err := r.mapper.ToModel(n)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)

	// Save writes every column so nullable fields (available_after,
	// status) can transition back to NULL.
	if err := tx.Save(model).Error; err != nil {
		return fmt.Errorf("failed to update number: %w", err)
	}

	return nil
}

func (r *NumberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Where("id = ?", id).Delete(&models.NumberModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete number: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return number.ErrNumberNotFound
	}

	return nil
}

func (r *NumberRepository) List(ctx context.Context, filter number.ListFilter) ([]*number.Number, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.NumberModel{})

	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Classification != "" {
		query = query.Where("classification = ?", filter.Classification.String())
	}
	if filter.Capability != "" {
		query = capabilityPredicate(tx, query, filter.Capability.String())
	}
	if filter.Matching != "" {
		query = query.Where("phone_number LIKE ?", filter.Matching+"%")
	}
	if filter.AvailableBy != nil {
		query = query.Where("available_after IS NOT NULL AND available_after <= ?", *filter.AvailableBy)
	}

	assignmentIDs := tx.Model(&models.AssignmentModel{}).Select("number_id")
	if filter.Assigned != nil {
		if *filter.Assigned {
			query = query.Where("id IN (?)", assignmentIDs)
		} else {
			query = query.Where("id NOT IN (?)", assignmentIDs)
		}
	}
	if filter.VendorID != "" {
		owned := tx.Model(&models.AssignmentModel{}).
			Select("number_id").
			Where("vendor_id = ?", filter.VendorID)
		if filter.AccountID != "" {
			owned = owned.Where("account_id = ?", filter.AccountID)
		}
		query = query.Where("id IN (?)", owned)
	}

	if filter.Token != nil {
		query = query.Where("id >= ?", *filter.Token)
	}

	query = query.Order("id ASC")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize + 1)
	}

	var numberModels []*models.NumberModel
	if err := query.Find(&numberModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list numbers: %w", err)
	}

	return r.mapper.ToEntities(numberModels)
}

// capabilityPredicate matches rows whose capabilities JSON array contains
// the given capability. Postgres gets jsonb containment, everything else a
// substring match on the serialized array.
func capabilityPredicate(tx *gorm.DB, query *gorm.DB, capability string) *gorm.DB {
	needle := fmt.Sprintf("%q", capability)
	if tx.Dialector.Name() == "postgres" {
		return query.Where("capabilities @> ?", "["+needle+"]")
	}
	return query.Where("capabilities LIKE ?", "%"+needle+"%")
}
