package ticket

import "context"

// Repository persists tickets in submission order.
type Repository interface {
	// Create assigns the next number to t and appends it.
	Create(ctx context.Context, t *Ticket) error

	// Update replaces the stored ticket with the same number.
	Update(ctx context.Context, t *Ticket) error

	// GetByNumber returns nil, nil when no ticket has that number.
	GetByNumber(ctx context.Context, number int) (*Ticket, error)

	// List returns every ticket in persisted order.
	List(ctx context.Context) ([]*Ticket, error)
}
