// Package mappers handles the conversion between domain entities and
// persistence models.
package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"numbers/internal/domain/number"
	vo "numbers/internal/domain/number/valueobjects"
	"numbers/internal/infrastructure/persistence/models"
)

// NumberMapper handles the conversion between number entities and
// persistence models.
type NumberMapper interface {
	ToEntity(model *models.NumberModel) (*number.Number, error)
	ToModel(entity *number.Number) (*models.NumberModel, error)
	ToEntities(models []*models.NumberModel) ([]*number.Number, error)
}

type NumberMapperImpl struct{}

// NewNumberMapper creates a new number mapper.
func NewNumberMapper() NumberMapper {
	return &NumberMapperImpl{}
}

func (m *NumberMapperImpl) ToEntity(model *models.NumberModel) (*number.Number, error) {
	if model == nil {
		return nil, nil
	}

	var names []string
	if len(model.Capabilities) > 0 {
		if err := json.Unmarshal(model.Capabilities, &names); err != nil {
			return nil, fmt.Errorf("failed to parse capabilities: %w", err)
		}
	}
	caps, err := vo.ParseCapabilities(names)
	if err != nil {
		return nil, fmt.Errorf("invalid stored capabilities: %w", err)
	}

	var status *vo.Status
	if model.Status != nil {
		s := vo.Status(*model.Status)
		if !s.IsValid() {
			return nil, fmt.Errorf("invalid stored status: %s", *model.Status)
		}
		status = &s
	}

	return number.ReconstructNumber(
		model.ID,
		model.PhoneNumber,
		model.ProviderID,
		model.Country,
		vo.NumberType(model.Type),
		vo.Classification(model.Classification),
		caps,
		model.DedicatedReceiver,
		model.AvailableAfter,
		status,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *NumberMapperImpl) ToModel(entity *number.Number) (*models.NumberModel, error) {
	if entity == nil {
		return nil, nil
	}

	capabilities, err := json.Marshal(entity.Capabilities().Strings())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize capabilities: %w", err)
	}

	var status *string
	if s := entity.Status(); s != nil {
		v := string(*s)
		status = &v
	}

	return &models.NumberModel{
		ID:                entity.ID(),
		PhoneNumber:       entity.PhoneNumber(),
		ProviderID:        entity.ProviderID(),
		Country:           entity.Country(),
		Type:              string(entity.Type()),
		Classification:    string(entity.Classification()),
		Capabilities:      datatypes.JSON(capabilities),
		DedicatedReceiver: entity.DedicatedReceiver(),
		AvailableAfter:    entity.AvailableAfter(),
		Status:            status,
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *NumberMapperImpl) ToEntities(numberModels []*models.NumberModel) ([]*number.Number, error) {
	entities := make([]*number.Number, 0, len(numberModels))
	for _, model := range numberModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
