// Package persistence selects the storage backend for users and tickets.
package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/jsonstore"
	"github.com/sismaterial/helpdesk/internal/infrastructure/repository"
	"github.com/sismaterial/helpdesk/internal/shared/config"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// Stores bundles the repositories of one backend.
type Stores struct {
	Users   user.Repository
	Tickets ticket.Repository
}

// NewStores returns the JSON file stores for the "json" driver and the gorm
// repositories otherwise. db must be open for the SQL drivers.
func NewStores(cfg *config.StorageConfig, db *gorm.DB, log logger.Interface) (*Stores, error) {
	if !cfg.UsesSQL() {
		return NewJSONStores(cfg, log), nil
	}
	if db == nil {
		return nil, fmt.Errorf("storage driver %q needs an open database", cfg.Driver)
	}
	return &Stores{
		Users:   repository.NewUserRepository(db, log.Named("repository.user")),
		Tickets: repository.NewTicketRepository(db, log.Named("repository.ticket")),
	}, nil
}

// NewJSONStores opens the flat file stores regardless of the configured driver.
func NewJSONStores(cfg *config.StorageConfig, log logger.Interface) *Stores {
	return &Stores{
		Users:   jsonstore.NewUserStore(cfg.UsersFile, log.Named("jsonstore.user")),
		Tickets: jsonstore.NewTicketStore(cfg.TicketsFile, log.Named("jsonstore.ticket")),
	}
}
