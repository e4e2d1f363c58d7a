package migration

import (
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the gorm models owned by the SQL backend.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.MessageModel{},
	}
}
