package ticket

import (
	"time"

	"github.com/sismaterial/helpdesk/internal/domain/shared/events"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
)

const (
	EventTypeTicketCreated       = "ticket.created"
	EventTypeTicketStatusChanged = "ticket.status_changed"
	EventTypeTicketMessageAdded  = "ticket.message_added"
)

type TicketCreatedEvent struct {
	events.BaseEvent
	Title          string
	Category       vo.Category
	Priority       vo.Priority
	SubmitterName  string
	SubmitterEmail string
}

func NewTicketCreatedEvent(t *Ticket) *TicketCreatedEvent {
	return &TicketCreatedEvent{
		BaseEvent:      events.NewBaseEvent(t.Number(), EventTypeTicketCreated, time.Now().UTC()),
		Title:          t.title,
		Category:       t.category,
		Priority:       t.priority,
		SubmitterName:  t.submitterName,
		SubmitterEmail: t.submitterEmail,
	}
}

type TicketStatusChangedEvent struct {
	events.BaseEvent
	Title          string
	OldStatus      vo.TicketStatus
	NewStatus      vo.TicketStatus
	ChangedBy      string
	SubmitterEmail string
}

func NewTicketStatusChangedEvent(t *Ticket, oldStatus vo.TicketStatus, changedBy string) *TicketStatusChangedEvent {
	return &TicketStatusChangedEvent{
		BaseEvent:      events.NewBaseEvent(t.Number(), EventTypeTicketStatusChanged, time.Now().UTC()),
		Title:          t.title,
		OldStatus:      oldStatus,
		NewStatus:      t.status,
		ChangedBy:      changedBy,
		SubmitterEmail: t.submitterEmail,
	}
}

type TicketMessageAddedEvent struct {
	events.BaseEvent
	Title          string
	Author         string
	AuthorEmail    string
	Text           string
	SubmitterEmail string
}

func NewTicketMessageAddedEvent(t *Ticket, msg *Message, authorEmail string) *TicketMessageAddedEvent {
	return &TicketMessageAddedEvent{
		BaseEvent:      events.NewBaseEvent(t.Number(), EventTypeTicketMessageAdded, time.Now().UTC()),
		Title:          t.title,
		Author:         msg.author,
		AuthorEmail:    authorEmail,
		Text:           msg.text,
		SubmitterEmail: t.submitterEmail,
	}
}
