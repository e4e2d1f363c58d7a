package usecases

import (
	"context"
	stderrors "errors"

	"github.com/sismaterial/helpdesk/internal/domain/shared"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/shared/constants"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
)

// storageError hides repository failures behind an internal AppError.
func storageError(err error, message string) error {
	if stderrors.Is(err, shared.ErrCorruptStore) {
		return errors.NewInternalError(constants.ErrMsgStoreUnreadable)
	}
	return errors.NewInternalError(message)
}

// loadTicket resolves a padded or unpadded number to a ticket.
func loadTicket(ctx context.Context, repo ticket.Repository, number string) (*ticket.Ticket, error) {
	n, err := ticket.ParseNumber(number)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found", number)
	}

	t, err := repo.GetByNumber(ctx, n)
	if err != nil {
		return nil, storageError(err, "failed to load ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found", ticket.FormatNumber(n))
	}
	return t, nil
}
