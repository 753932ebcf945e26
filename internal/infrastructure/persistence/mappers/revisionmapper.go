package mappers

import (
	"fmt"

	"numbers/internal/domain/audit"
	"numbers/internal/domain/number"
	"numbers/internal/infrastructure/persistence/models"
)

// RevisionMapper converts audit log rows to and from the persistence
// model. ToModel never carries a revision number: the store assigns it.
type RevisionMapper interface {
	ToRevision(model *models.AssignmentRevisionModel) (audit.Revision, error)
	ToRevisions(models []*models.AssignmentRevisionModel) ([]audit.Revision, error)
	FromAssignment(a *number.Assignment, revisionType audit.RevisionType) *models.AssignmentRevisionModel
}

type RevisionMapperImpl struct{}

// NewRevisionMapper creates a new revision mapper.
func NewRevisionMapper() RevisionMapper {
	return &RevisionMapperImpl{}
}

func (m *RevisionMapperImpl) ToRevision(model *models.AssignmentRevisionModel) (audit.Revision, error) {
	revisionType := audit.RevisionType(model.RevisionType)
	if !revisionType.IsValid() {
		return audit.Revision{}, fmt.Errorf("invalid stored revision type: %s", model.RevisionType)
	}

	metadata, err := metadataFromJSONMap(model.Metadata)
	if err != nil {
		return audit.Revision{}, err
	}

	return audit.Revision{
		RevisionNumber: model.RevisionNumber,
		RevisionType:   revisionType,
		Timestamp:      model.Timestamp,
		AssignmentID:   model.AssignmentID,
		NumberID:       model.NumberID,
		VendorID:       model.VendorID,
		AccountID:      model.AccountID,
		CallbackURL:    model.CallbackURL,
		Metadata:       metadata,
		Label:          model.Label,
		Created:        model.Created,
	}, nil
}

func (m *RevisionMapperImpl) ToRevisions(revisionModels []*models.AssignmentRevisionModel) ([]audit.Revision, error) {
	revisions := make([]audit.Revision, 0, len(revisionModels))
	for _, model := range revisionModels {
		rev, err := m.ToRevision(model)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

func (m *RevisionMapperImpl) FromAssignment(a *number.Assignment, revisionType audit.RevisionType) *models.AssignmentRevisionModel {
	return &models.AssignmentRevisionModel{
		RevisionType: string(revisionType),
		AssignmentID: a.ID(),
		NumberID:     a.NumberID(),
		VendorID:     a.VendorID(),
		AccountID:    a.AccountID(),
		CallbackURL:  a.CallbackURL(),
		Metadata:     metadataToJSONMap(a.Metadata()),
		Label:        a.Label(),
		Created:      a.CreatedAt(),
	}
}
