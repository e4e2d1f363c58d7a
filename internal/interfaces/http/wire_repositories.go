package http

import (
	"fmt"

	"github.com/sismaterial/helpdesk/internal/domain/attachment"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence"
	"github.com/sismaterial/helpdesk/internal/infrastructure/storage"
)

// repositories holds the stores selected by storage.driver.
type repositories struct {
	userRepo   user.Repository
	ticketRepo ticket.Repository
	files      attachment.Store
}

func (c *Container) newRepositories() (*repositories, error) {
	stores, err := persistence.NewStores(&c.cfg.Storage, c.db, c.log)
	if err != nil {
		return nil, err
	}

	files, err := storage.NewFileStore(c.cfg.Storage.AttachmentDir, c.log.Named("storage.files"))
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment directory: %w", err)
	}

	return &repositories{
		userRepo:   stores.Users,
		ticketRepo: stores.Tickets,
		files:      files,
	}, nil
}
