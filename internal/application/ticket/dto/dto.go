package dto

import (
	"time"

	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/shared/biztime"
)

type TicketDTO struct {
	Number         string          `json:"number"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	CategoryCode   string          `json:"category_code"`
	Priority       string          `json:"priority"`
	PriorityCode   string          `json:"priority_code"`
	Status         string          `json:"status"`
	StatusCode     string          `json:"status_code"`
	SubmitterName  string          `json:"submitter_name"`
	SubmitterEmail string          `json:"submitter_email"`
	Date           string          `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
	Attachments    []AttachmentDTO `json:"attachments"`
	Messages       []MessageDTO    `json:"messages"`
}

// AttachmentDTO flags files that are listed on the ticket but gone from disk.
type AttachmentDTO struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type MessageDTO struct {
	Author    string    `json:"author"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
}

type TicketListItemDTO struct {
	Number     string    `json:"number"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	Status     string    `json:"status"`
	StatusCode string    `json:"status_code"`
	Category   string    `json:"category"`
	Priority   string    `json:"priority"`
}

// OptionDTO is one choice of an enum select box.
type OptionDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type OptionsDTO struct {
	Categories      []OptionDTO `json:"categories"`
	Priorities      []OptionDTO `json:"priorities"`
	Statuses        []OptionDTO `json:"statuses"`
	DefaultPriority string      `json:"default_priority"`
}

// ToTicketDTO converts a ticket. available reports whether each attachment
// exists in the attachment store; nil marks every attachment available.
func ToTicketDTO(t *ticket.Ticket, available map[string]bool) *TicketDTO {
	if t == nil {
		return nil
	}

	attachments := make([]AttachmentDTO, 0, len(t.Attachments()))
	for _, name := range t.Attachments() {
		ok := true
		if available != nil {
			ok = available[name]
		}
		attachments = append(attachments, AttachmentDTO{Name: name, Available: ok})
	}

	messages := make([]MessageDTO, 0, len(t.Messages()))
	for _, m := range t.Messages() {
		messages = append(messages, ToMessageDTO(m))
	}

	return &TicketDTO{
		Number:         t.Number(),
		Title:          t.Title(),
		Description:    t.Description(),
		Category:       t.Category().String(),
		CategoryCode:   t.Category().Code(),
		Priority:       t.Priority().String(),
		PriorityCode:   t.Priority().Code(),
		Status:         t.Status().String(),
		StatusCode:     t.Status().Code(),
		SubmitterName:  t.SubmitterName(),
		SubmitterEmail: t.SubmitterEmail(),
		Date:           biztime.FormatMinute(t.CreatedAt()),
		CreatedAt:      t.CreatedAt(),
		Attachments:    attachments,
		Messages:       messages,
	}
}

func ToMessageDTO(m *ticket.Message) MessageDTO {
	return MessageDTO{
		Author:    m.Author(),
		Date:      biztime.FormatMinute(m.CreatedAt()),
		CreatedAt: m.CreatedAt(),
		Text:      m.Text(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		Number:     t.Number(),
		Title:      t.Title(),
		Date:       biztime.FormatMinute(t.CreatedAt()),
		CreatedAt:  t.CreatedAt(),
		Status:     t.Status().String(),
		StatusCode: t.Status().Code(),
		Category:   t.Category().String(),
		Priority:   t.Priority().String(),
	}
}

// Options lists every enum in the order the forms present them.
func Options() OptionsDTO {
	out := OptionsDTO{DefaultPriority: vo.DefaultPriority.String()}
	for _, c := range vo.AllCategories {
		out.Categories = append(out.Categories, OptionDTO{Code: c.Code(), Label: c.String()})
	}
	for _, p := range vo.AllPriorities {
		out.Priorities = append(out.Priorities, OptionDTO{Code: p.Code(), Label: p.String()})
	}
	for _, s := range vo.AllStatuses {
		out.Statuses = append(out.Statuses, OptionDTO{Code: s.Code(), Label: s.String()})
	}
	return out
}
