package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket to its row. ID is left for the repository to fill.
	ToModel(t *ticket.Ticket) (*models.TicketModel, error)

	// MessagesToModels converts the chat to rows ordered oldest first.
	MessagesToModels(ticketID uint, messages []*ticket.Message) []*models.MessageModel

	// ToDomain rebuilds a ticket from its row and message rows in any order.
	ToDomain(model *models.TicketModel, messages []*models.MessageModel) (*ticket.Ticket, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) (*models.TicketModel, error) {
	attachments, err := json.Marshal(t.Attachments())
	if err != nil {
		return nil, fmt.Errorf("failed to encode attachments: %w", err)
	}

	return &models.TicketModel{
		Number:         t.Seq(),
		SubmitterName:  t.SubmitterName(),
		SubmitterEmail: t.SubmitterEmail(),
		Title:          t.Title(),
		Category:       t.Category().String(),
		Priority:       t.Priority().String(),
		Description:    t.Description(),
		Attachments:    attachments,
		Status:         t.Status().String(),
		CreatedAt:      t.CreatedAt().UnixMilli(),
	}, nil
}

func (m *TicketMapperImpl) MessagesToModels(ticketID uint, messages []*ticket.Message) []*models.MessageModel {
	out := make([]*models.MessageModel, 0, len(messages))
	// domain order is newest first
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		out = append(out, &models.MessageModel{
			TicketID:  ticketID,
			Position:  len(messages) - 1 - i,
			Author:    msg.Author(),
			Text:      msg.Text(),
			CreatedAt: msg.CreatedAt().UnixMilli(),
		})
	}
	return out
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel, messages []*models.MessageModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	var attachments []string
	if len(model.Attachments) > 0 {
		if err := json.Unmarshal(model.Attachments, &attachments); err != nil {
			return nil, fmt.Errorf("failed to decode attachments of ticket %d: %w", model.Number, err)
		}
	}

	ordered := make([]*ticket.Message, len(messages))
	for _, msg := range messages {
		idx := len(messages) - 1 - msg.Position
		if idx < 0 || idx >= len(messages) || ordered[idx] != nil {
			return nil, fmt.Errorf("ticket %d has inconsistent message positions", model.Number)
		}
		ordered[idx] = ticket.ReconstructMessage(msg.Author, msg.Text, time.UnixMilli(msg.CreatedAt).UTC())
	}

	return ticket.ReconstructTicket(
		model.Number,
		model.SubmitterName,
		model.SubmitterEmail,
		time.UnixMilli(model.CreatedAt).UTC(),
		model.Title,
		vo.Category(model.Category),
		vo.Priority(model.Priority),
		model.Description,
		attachments,
		vo.StatusOrDefault(model.Status),
		ordered,
	)
}
