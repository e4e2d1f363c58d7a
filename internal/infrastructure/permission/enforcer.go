// Package permission authorizes helpdesk actions with a casbin RBAC model.
package permission

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type Enforcer struct {
	enforcer *casbin.Enforcer
	// persisted is false for the in-memory enforcer used with the JSON backend
	persisted bool
	mu        sync.RWMutex
	logger    logger.Interface
}

// NewEnforcer stores policy in casbin_rule through the gorm adapter.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer:  enforcer,
		persisted: true,
		logger:    log,
	}, nil
}

// NewMemoryEnforcer keeps policy in process; role links are rebuilt from the
// user store at startup.
func NewMemoryEnforcer(log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) save() error {
	if !e.persisted {
		return nil
	}
	return e.enforcer.SavePolicy()
}

// Authorize checks id against resource and action. A user with no stored
// role link is judged by the role carried in the session.
func (e *Enforcer) Authorize(id authorization.Identity, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	subject := id.Email
	roles, err := e.enforcer.GetRolesForUser(subject)
	if err != nil {
		return false, fmt.Errorf("failed to get roles for user: %w", err)
	}
	if len(roles) == 0 {
		subject = id.Role.String()
	}

	allowed, err := e.enforcer.Enforce(subject, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "subject", subject, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// AssignRole links email to exactly one role, replacing any previous link.
func (e *Enforcer) AssignRole(ctx context.Context, email string, role authorization.UserRole) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.enforcer.GetRolesForUser(email)
	if err != nil {
		return fmt.Errorf("failed to get roles for user: %w", err)
	}
	if len(current) == 1 && current[0] == role.String() {
		return nil
	}

	if _, err := e.enforcer.DeleteRolesForUser(email); err != nil {
		e.logger.Errorw("failed to delete roles for user", "error", err, "email", email)
		return fmt.Errorf("failed to delete roles for user: %w", err)
	}
	if _, err := e.enforcer.AddRoleForUser(email, role.String()); err != nil {
		e.logger.Errorw("failed to add role for user", "error", err, "email", email, "role", role)
		return fmt.Errorf("failed to add role for user: %w", err)
	}

	return e.save()
}

func (e *Enforcer) GetRolesForUser(email string) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	roles, err := e.enforcer.GetRolesForUser(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles for user: %w", err)
	}

	return roles, nil
}

func (e *Enforcer) LoadPolicy() error {
	if !e.persisted {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Infow("policy reloaded successfully")
	return nil
}
