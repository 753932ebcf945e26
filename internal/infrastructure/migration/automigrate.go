package migration

import (
	"numbers/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.NumberModel{},
		&models.AssignmentModel{},
		&models.AssignmentRevisionModel{},
	}
}
