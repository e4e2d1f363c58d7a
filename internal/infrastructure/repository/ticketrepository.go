package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/models"
	"github.com/sismaterial/helpdesk/internal/shared/db"
	apperrors "github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// createAttempts bounds retries when two writers race for the same number.
const createAttempts = 3

// TicketRepository implements ticket.Repository with gorm.
type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

// Create assigns the next number and inserts the ticket with its messages.
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		var number int
		lastErr = db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
			var max int
			if err := tx.Model(&models.TicketModel{}).
				Select("COALESCE(MAX(number), 0)").
				Scan(&max).Error; err != nil {
				return fmt.Errorf("failed to read last ticket number: %w", err)
			}

			number = max + 1
			row := *model
			row.Number = number
			if err := tx.Create(&row).Error; err != nil {
				return err
			}

			messages := r.mapper.MessagesToModels(row.ID, t.Messages())
			if len(messages) > 0 {
				if err := tx.Create(&messages).Error; err != nil {
					return fmt.Errorf("failed to save messages: %w", err)
				}
			}
			return nil
		})
		if lastErr == nil {
			return t.SetNumber(number)
		}
		if !apperrors.IsDuplicateError(lastErr) {
			break
		}
		r.logger.Warnw("ticket number taken, retrying", "number", number, "attempt", attempt+1)
	}

	r.logger.Errorw("failed to create ticket", "error", lastErr)
	return fmt.Errorf("failed to create ticket: %w", lastErr)
}

// Update rewrites the mutable fields and the whole chat of an existing ticket.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}

	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var existing models.TicketModel
		if err := tx.Where("number = ?", t.Seq()).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("ticket not found", t.Number())
			}
			return fmt.Errorf("failed to find ticket: %w", err)
		}

		if err := tx.Model(&existing).Updates(map[string]any{
			"title":       model.Title,
			"category":    model.Category,
			"priority":    model.Priority,
			"description": model.Description,
			"attachments": model.Attachments,
			"status":      model.Status,
		}).Error; err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		if err := tx.Where("ticket_id = ?", existing.ID).Delete(&models.MessageModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear messages: %w", err)
		}
		messages := r.mapper.MessagesToModels(existing.ID, t.Messages())
		if len(messages) > 0 {
			if err := tx.Create(&messages).Error; err != nil {
				return fmt.Errorf("failed to save messages: %w", err)
			}
		}
		return nil
	})
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number int) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	var messages []*models.MessageModel
	if err := tx.Where("ticket_id = ?", model.ID).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	return r.mapper.ToDomain(&model, messages)
}

// List returns every ticket in creation order with messages loaded in one query.
func (r *TicketRepository) List(ctx context.Context) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []*models.TicketModel
	if err := tx.Order("number ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	if len(rows) == 0 {
		return []*ticket.Ticket{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var messageRows []*models.MessageModel
	if err := tx.Where("ticket_id IN ?", ids).Find(&messageRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	byTicket := make(map[uint][]*models.MessageModel, len(rows))
	for _, m := range messageRows {
		byTicket[m.TicketID] = append(byTicket[m.TicketID], m)
	}

	out := make([]*ticket.Ticket, 0, len(rows))
	for _, row := range rows {
		t, err := r.mapper.ToDomain(row, byTicket[row.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Restore inserts t keeping its existing number. Used when importing a legacy
// store; a ticket whose number already exists is reported as a conflict.
func (r *TicketRepository) Restore(ctx context.Context, t *ticket.Ticket) error {
	if t.Seq() <= 0 {
		return fmt.Errorf("cannot restore a ticket without number")
	}
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}

	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.NewConflictError("ticket already exists", t.Number())
			}
			return fmt.Errorf("failed to restore ticket: %w", err)
		}
		messages := r.mapper.MessagesToModels(model.ID, t.Messages())
		if len(messages) > 0 {
			if err := tx.Create(&messages).Error; err != nil {
				return fmt.Errorf("failed to save messages: %w", err)
			}
		}
		return nil
	})
}
