package migration

import (
	"context"
	"fmt"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// TicketRestorer inserts a ticket under its existing number.
type TicketRestorer interface {
	Restore(ctx context.Context, t *ticket.Ticket) error
}

// Transactor runs fn in one transaction that the target repositories join.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImportResult counts what an import copied and skipped.
type ImportResult struct {
	UsersImported   int
	UsersSkipped    int
	TicketsImported int
	TicketsSkipped  int
}

// Importer copies the legacy JSON stores into the SQL backend. Records that
// already exist in the target are skipped, so an import can be rerun. With a
// Transactor a failed import leaves the target untouched.
type Importer struct {
	sourceUsers   user.Repository
	sourceTickets ticket.Repository
	targetUsers   user.Repository
	targetTickets TicketRestorer
	tx            Transactor
	logger        logger.Interface
}

func NewImporter(
	sourceUsers user.Repository,
	sourceTickets ticket.Repository,
	targetUsers user.Repository,
	targetTickets TicketRestorer,
	tx Transactor,
	log logger.Interface,
) *Importer {
	return &Importer{
		sourceUsers:   sourceUsers,
		sourceTickets: sourceTickets,
		targetUsers:   targetUsers,
		targetTickets: targetTickets,
		tx:            tx,
		logger:        log.With("component", "migration.importer"),
	}
}

// Run imports users first and then tickets in stored order, keeping numbers.
func (i *Importer) Run(ctx context.Context) (*ImportResult, error) {
	if i.tx == nil {
		return i.run(ctx)
	}

	var result *ImportResult
	err := i.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = i.run(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Importer) run(ctx context.Context) (*ImportResult, error) {
	result := &ImportResult{}

	if i.sourceUsers != nil {
		users, err := i.sourceUsers.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read users: %w", err)
		}
		for _, u := range users {
			err := i.targetUsers.Create(ctx, u)
			switch {
			case err == nil:
				result.UsersImported++
			case errors.IsConflictError(err):
				result.UsersSkipped++
			default:
				return result, fmt.Errorf("failed to import user %s: %w", u.Email(), err)
			}
		}
	}

	if i.sourceTickets != nil {
		tickets, err := i.sourceTickets.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read tickets: %w", err)
		}
		for _, t := range tickets {
			err := i.targetTickets.Restore(ctx, t)
			switch {
			case err == nil:
				result.TicketsImported++
			case errors.IsConflictError(err):
				result.TicketsSkipped++
			default:
				return result, fmt.Errorf("failed to import ticket %s: %w", t.Number(), err)
			}
		}
	}

	i.logger.Infow("legacy import finished",
		"users_imported", result.UsersImported,
		"users_skipped", result.UsersSkipped,
		"tickets_imported", result.TicketsImported,
		"tickets_skipped", result.TicketsSkipped)
	return result, nil
}
