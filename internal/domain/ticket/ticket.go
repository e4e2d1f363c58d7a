package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
)

// Ticket is a support request. Messages are kept newest first.
type Ticket struct {
	number         int
	submitterName  string
	submitterEmail string
	createdAt      time.Time
	title          string
	category       vo.Category
	priority       vo.Priority
	description    string
	attachments    []string
	status         vo.TicketStatus
	messages       []*Message
}

// NewTicket builds an unnumbered open ticket. The repository assigns the
// number on Create.
func NewTicket(
	title string,
	description string,
	category vo.Category,
	priority vo.Priority,
	submitterName string,
	submitterEmail string,
	attachments []string,
	createdAt time.Time,
) (*Ticket, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if strings.TrimSpace(submitterEmail) == "" {
		return nil, fmt.Errorf("submitter email is required")
	}
	if attachments == nil {
		attachments = []string{}
	}

	return &Ticket{
		submitterName:  submitterName,
		submitterEmail: submitterEmail,
		createdAt:      createdAt.Truncate(time.Minute),
		title:          title,
		category:       category,
		priority:       priority,
		description:    description,
		attachments:    append([]string(nil), attachments...),
		status:         vo.StatusOpen,
		messages:       []*Message{},
	}, nil
}

// ReconstructTicket rebuilds a ticket from persistence. Stored values are
// trusted as-is so legacy records with unknown labels still load.
func ReconstructTicket(
	number int,
	submitterName string,
	submitterEmail string,
	createdAt time.Time,
	title string,
	category vo.Category,
	priority vo.Priority,
	description string,
	attachments []string,
	status vo.TicketStatus,
	messages []*Message,
) (*Ticket, error) {
	if number <= 0 {
		return nil, fmt.Errorf("ticket number must be positive")
	}
	if status == "" {
		status = vo.StatusOpen
	}
	if attachments == nil {
		attachments = []string{}
	}
	if messages == nil {
		messages = []*Message{}
	}

	return &Ticket{
		number:         number,
		submitterName:  submitterName,
		submitterEmail: submitterEmail,
		createdAt:      createdAt,
		title:          title,
		category:       category,
		priority:       priority,
		description:    description,
		attachments:    attachments,
		status:         status,
		messages:       messages,
	}, nil
}

// Number returns the zero-padded display number, or "" before Create.
func (t *Ticket) Number() string {
	if t.number == 0 {
		return ""
	}
	return FormatNumber(t.number)
}

// Seq returns the numeric ticket number.
func (t *Ticket) Seq() int {
	return t.number
}

func (t *Ticket) SubmitterName() string {
	return t.submitterName
}

func (t *Ticket) SubmitterEmail() string {
	return t.submitterEmail
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Attachments() []string {
	out := make([]string, len(t.attachments))
	copy(out, t.attachments)
	return out
}

// HasAttachment reports whether name is one of the files listed on the ticket.
func (t *Ticket) HasAttachment(name string) bool {
	for _, a := range t.attachments {
		if a == name {
			return true
		}
	}
	return false
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Messages() []*Message {
	out := make([]*Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Ticket) SetNumber(number int) error {
	if t.number != 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if number <= 0 {
		return fmt.Errorf("ticket number must be positive")
	}
	t.number = number
	return nil
}

// ChangeStatus sets any valid status. It reports false when the ticket
// already had that status.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) (bool, error) {
	if !newStatus.IsValid() {
		return false, fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return false, nil
	}
	t.status = newStatus
	return true, nil
}

// AddMessage inserts msg at the head of the chat.
func (t *Ticket) AddMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("message cannot be nil")
	}
	t.messages = append([]*Message{msg}, t.messages...)
	return nil
}

// MatchesFilter reports whether folded is a substring of the folded title or
// raw is a substring of the display number. Callers pass the filter already
// trimmed; folding is supplied by the caller.
func (t *Ticket) MatchesFilter(raw, folded string, fold func(string) string) bool {
	if raw == "" {
		return true
	}
	if strings.Contains(fold(t.title), folded) {
		return true
	}
	return strings.Contains(t.Number(), raw)
}
