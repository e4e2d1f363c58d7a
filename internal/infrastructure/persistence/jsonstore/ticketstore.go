package jsonstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sismaterial/helpdesk/internal/domain/shared"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/shared/biztime"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// TicketStore implements ticket.Repository on the tickets file, an ordered
// array of records. Each call is one load, mutate, save cycle under mu.
type TicketStore struct {
	path   string
	mu     sync.Mutex
	logger logger.Interface
}

func NewTicketStore(path string, logger logger.Interface) *TicketStore {
	return &TicketStore{
		path:   path,
		logger: logger,
	}
}

func (s *TicketStore) load() ([]ticketRecord, error) {
	var records []ticketRecord
	if _, err := readJSON(s.path, &records); err != nil {
		s.logger.Errorw("tickets file is unreadable", "path", s.path, "error", err)
		return nil, err
	}
	return records, nil
}

func (s *TicketStore) save(records []ticketRecord) error {
	if records == nil {
		records = []ticketRecord{}
	}
	if err := writeJSONAtomic(s.path, records); err != nil {
		return fmt.Errorf("save tickets: %w", err)
	}
	return nil
}

func (s *TicketStore) Create(ctx context.Context, t *ticket.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	existing, err := toDomainTickets(records)
	if err != nil {
		return err
	}

	if err := t.SetNumber(ticket.NextNumber(existing)); err != nil {
		return err
	}

	records = append(records, toTicketRecord(t))
	return s.save(records)
}

func (s *TicketStore) Update(ctx context.Context, t *ticket.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	idx, err := findByNumber(records, t.Seq())
	if err != nil {
		return err
	}
	if idx < 0 {
		return errors.NewNotFoundError("ticket not found", t.Number())
	}

	records[idx] = toTicketRecord(t)
	return s.save(records)
}

func (s *TicketStore) GetByNumber(ctx context.Context, number int) (*ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	idx, err := findByNumber(records, number)
	if err != nil || idx < 0 {
		return nil, err
	}
	return toDomainTicket(records[idx], idx)
}

func (s *TicketStore) List(ctx context.Context) ([]*ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	return toDomainTickets(records)
}

// numberOf is the stored number, or position+1 for records that predate it.
func numberOf(rec ticketRecord, index int) (int, error) {
	if rec.Number == "" {
		return index + 1, nil
	}
	n, err := ticket.ParseNumber(rec.Number)
	if err != nil {
		return 0, fmt.Errorf("record %d: %v: %w", index, err, shared.ErrCorruptStore)
	}
	return n, nil
}

// findByNumber returns the index of the record with number, or -1.
func findByNumber(records []ticketRecord, number int) (int, error) {
	for i, rec := range records {
		n, err := numberOf(rec, i)
		if err != nil {
			return -1, err
		}
		if n == number {
			return i, nil
		}
	}
	return -1, nil
}

func toDomainTickets(records []ticketRecord) ([]*ticket.Ticket, error) {
	out := make([]*ticket.Ticket, 0, len(records))
	for i, rec := range records {
		t, err := toDomainTicket(rec, i)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func toDomainTicket(rec ticketRecord, index int) (*ticket.Ticket, error) {
	number, err := numberOf(rec, index)
	if err != nil {
		return nil, err
	}

	createdAt, err := parseStoredTime(rec.Date)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %v: %w", ticket.FormatNumber(number), err, shared.ErrCorruptStore)
	}

	// stored newest first
	messages := make([]*ticket.Message, 0, len(rec.Messages))
	for _, m := range rec.Messages {
		at, err := parseStoredTime(m.Date)
		if err != nil {
			return nil, fmt.Errorf("ticket %s message: %v: %w", ticket.FormatNumber(number), err, shared.ErrCorruptStore)
		}
		messages = append(messages, ticket.ReconstructMessage(m.User, m.Text, at))
	}

	return ticket.ReconstructTicket(
		number,
		rec.User,
		rec.Email,
		createdAt,
		rec.Title,
		vo.Category(rec.Category),
		vo.Priority(rec.Priority),
		rec.Description,
		rec.Files,
		vo.StatusOrDefault(rec.Status),
		messages,
	)
}

func toTicketRecord(t *ticket.Ticket) ticketRecord {
	files := t.Attachments()
	if files == nil {
		files = []string{}
	}

	rec := ticketRecord{
		Number:      t.Number(),
		User:        t.SubmitterName(),
		Email:       t.SubmitterEmail(),
		Date:        biztime.FormatMinute(t.CreatedAt()),
		Title:       t.Title(),
		Category:    t.Category().String(),
		Priority:    t.Priority().String(),
		Description: t.Description(),
		Files:       files,
		Status:      t.Status().String(),
	}
	for _, m := range t.Messages() {
		rec.Messages = append(rec.Messages, messageRecord{
			User: m.Author(),
			Date: biztime.FormatMinute(m.CreatedAt()),
			Text: m.Text(),
		})
	}
	return rec
}

// parseStoredTime accepts the minute layout and tolerates a seconds suffix.
func parseStoredTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(biztime.MinuteLayout) {
		s = s[:len(biztime.MinuteLayout)]
	}
	return biztime.ParseMinute(s)
}
