package jsonstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// UserStore implements user.Repository on the users file
// ({"<email>": {"nome", "senha", "perfil"}}).
type UserStore struct {
	path   string
	mu     sync.Mutex
	logger logger.Interface
}

func NewUserStore(path string, logger logger.Interface) *UserStore {
	return &UserStore{
		path:   path,
		logger: logger,
	}
}

func (s *UserStore) load() (map[string]userRecord, error) {
	records := map[string]userRecord{}
	if _, err := readJSON(s.path, &records); err != nil {
		s.logger.Errorw("users file is unreadable", "path", s.path, "error", err)
		return nil, err
	}
	if records == nil {
		records = map[string]userRecord{}
	}
	return records, nil
}

func (s *UserStore) save(records map[string]userRecord) error {
	// encoding/json sorts map keys, so output is stable
	if err := writeJSONAtomic(s.path, records); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	if _, exists := records[u.Email()]; exists {
		return errors.NewConflictError("user already exists", u.Email())
	}

	records[u.Email()] = toUserRecord(u)
	return s.save(records)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	email = user.NormalizeEmail(email)
	if rec, ok := records[email]; ok {
		return user.ReconstructUser(email, rec.Name, rec.Password, rec.Role), nil
	}
	// legacy files may hold keys that were never normalized
	for key, rec := range records {
		if user.NormalizeEmail(key) == email {
			return user.ReconstructUser(email, rec.Name, rec.Password, rec.Role), nil
		}
	}
	return nil, nil
}

func (s *UserStore) Update(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	key := u.Email()
	if _, ok := records[key]; !ok {
		found := false
		for k := range records {
			if user.NormalizeEmail(k) == key {
				key, found = k, true
				break
			}
		}
		if !found {
			return errors.NewNotFoundError("user not found", u.Email())
		}
	}

	records[key] = toUserRecord(u)
	return s.save(records)
}

func (s *UserStore) List(ctx context.Context) ([]*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]*user.User, 0, len(records))
	for email, rec := range records {
		out = append(out, user.ReconstructUser(email, rec.Name, rec.Password, rec.Role))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email() < out[j].Email() })
	return out, nil
}

func toUserRecord(u *user.User) userRecord {
	return userRecord{
		Name:     u.Name(),
		Password: u.PasswordHash(),
		Role:     u.Role().String(),
	}
}
