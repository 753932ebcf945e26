package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"numbers/internal/domain/number"
	"numbers/internal/infrastructure/persistence/models"
)

// AssignmentMapper handles the conversion between assignment entities and
// persistence models.
type AssignmentMapper interface {
	ToEntity(model *models.AssignmentModel) (*number.Assignment, error)
	ToModel(entity *number.Assignment) (*models.AssignmentModel, error)
}

type AssignmentMapperImpl struct{}

// NewAssignmentMapper creates a new assignment mapper.
func NewAssignmentMapper() AssignmentMapper {
	return &AssignmentMapperImpl{}
}

func (m *AssignmentMapperImpl) ToEntity(model *models.AssignmentModel) (*number.Assignment, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := metadataFromJSONMap(model.Metadata)
	if err != nil {
		return nil, err
	}

	return number.ReconstructAssignment(
		model.ID,
		model.NumberID,
		model.VendorID,
		model.AccountID,
		model.CallbackURL,
		metadata,
		model.Label,
		model.CreatedAt,
	), nil
}

func (m *AssignmentMapperImpl) ToModel(entity *number.Assignment) (*models.AssignmentModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.AssignmentModel{
		ID:          entity.ID(),
		NumberID:    entity.NumberID(),
		VendorID:    entity.VendorID(),
		AccountID:   entity.AccountID(),
		CallbackURL: entity.CallbackURL(),
		Metadata:    metadataToJSONMap(entity.Metadata()),
		Label:       entity.Label(),
		CreatedAt:   entity.CreatedAt(),
	}, nil
}

func metadataToJSONMap(metadata map[string]string) datatypes.JSONMap {
	if len(metadata) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}

func metadataFromJSONMap(raw datatypes.JSONMap) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("metadata value for %q is not a string", k)
		}
		out[k] = s
	}
	return out, nil
}
