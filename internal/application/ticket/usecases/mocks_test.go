package usecases

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/sismaterial/helpdesk/internal/domain/shared/events"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
)

type mockTicketRepository struct {
	CreateFunc      func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc      func(ctx context.Context, t *ticket.Ticket) error
	GetByNumberFunc func(ctx context.Context, number int) (*ticket.Ticket, error)
	ListFunc        func(ctx context.Context) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number int) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// newMemoryRepository wires the mock to a slice so use cases can be chained.
func newMemoryRepository(seed ...*ticket.Ticket) (*mockTicketRepository, *[]*ticket.Ticket) {
	store := append([]*ticket.Ticket(nil), seed...)
	repo := &mockTicketRepository{
		CreateFunc: func(ctx context.Context, t *ticket.Ticket) error {
			if err := t.SetNumber(ticket.NextNumber(store)); err != nil {
				return err
			}
			store = append(store, t)
			return nil
		},
		UpdateFunc: func(ctx context.Context, t *ticket.Ticket) error {
			for i, existing := range store {
				if existing.Seq() == t.Seq() {
					store[i] = t
				}
			}
			return nil
		},
		GetByNumberFunc: func(ctx context.Context, number int) (*ticket.Ticket, error) {
			for _, existing := range store {
				if existing.Seq() == number {
					return existing, nil
				}
			}
			return nil, nil
		},
		ListFunc: func(ctx context.Context) ([]*ticket.Ticket, error) {
			return append([]*ticket.Ticket(nil), store...), nil
		},
	}
	return repo, &store
}

type mockAttachmentStore struct {
	mu        sync.Mutex
	files     map[string][]byte
	SaveFunc  func(ctx context.Context, name string, content io.Reader) error
	OpenFunc  func(ctx context.Context, name string) (io.ReadCloser, error)
	ExistsErr error
}

func newMockAttachmentStore() *mockAttachmentStore {
	return &mockAttachmentStore{files: map[string][]byte{}}
}

func (m *mockAttachmentStore) Save(ctx context.Context, name string, content io.Reader) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, name, content)
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return nil
}

func (m *mockAttachmentStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockAttachmentStore) Exists(ctx context.Context, name string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok, nil
}

type mockPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
	err       error
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return m.err
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.GetEventType())
	}
	return out
}

type mockMetrics struct {
	created  int
	statuses []string
	messages int
	stored   []bool
}

func (m *mockMetrics) TicketCreated(string, string) { m.created++ }
func (m *mockMetrics) StatusChanged(s string)       { m.statuses = append(m.statuses, s) }
func (m *mockMetrics) MessageAdded()                { m.messages++ }
func (m *mockMetrics) AttachmentStored(ok bool)     { m.stored = append(m.stored, ok) }

var (
	ana     = authorization.Identity{Email: "ana@x.com", Name: "Ana", Role: authorization.RoleUser}
	support = authorization.Identity{Email: "sup@x.com", Name: "Suporte", Role: authorization.RoleSupport}
)

// storedTicket builds a persisted ticket for seeding repositories.
func storedTicket(number int, title string, createdAt time.Time, attachments ...string) *ticket.Ticket {
	t, err := ticket.ReconstructTicket(number, "Ana", "ana@x.com", createdAt, title,
		vo.CategorySystem, vo.PriorityMedium, "descricao", attachments, vo.StatusOpen, nil)
	if err != nil {
		panic(err)
	}
	return t
}

func upload(name, content string) AttachmentUpload {
	return AttachmentUpload{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewBufferString(content)), nil
		},
	}
}
