package permission

import (
	"context"
	"fmt"

	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
)

// defaultPolicies: every role works with tickets; only support changes
// status and registers users.
var defaultPolicies = [][]string{
	{authorization.RoleUser.String(), ResourceTicket, ActionRead},
	{authorization.RoleUser.String(), ResourceTicket, ActionCreate},
	{authorization.RoleUser.String(), ResourceTicket, ActionMessage},

	{authorization.RoleSupport.String(), ResourceTicket, ActionRead},
	{authorization.RoleSupport.String(), ResourceTicket, ActionCreate},
	{authorization.RoleSupport.String(), ResourceTicket, ActionMessage},
	{authorization.RoleSupport.String(), ResourceTicket, ActionChangeStatus},
	{authorization.RoleSupport.String(), ResourceUser, ActionCreate},
	{authorization.RoleSupport.String(), ResourceUser, ActionRead},
}

// InitPolicies adds the default policies that are missing.
func (e *Enforcer) InitPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, policy := range defaultPolicies {
		ok, err := e.enforcer.AddPolicy(policy[0], policy[1], policy[2])
		if err != nil {
			e.logger.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
		if ok {
			added++
		}
	}

	if added > 0 {
		if err := e.save(); err != nil {
			e.logger.Errorw("failed to save permissions", "error", err)
			return fmt.Errorf("failed to save permissions: %w", err)
		}
	}

	e.logger.Infow("permissions initialized", "added", added)
	return nil
}

// SyncUserRoles links every stored user to the role recorded on the user.
func (e *Enforcer) SyncUserRoles(ctx context.Context, users user.Repository) error {
	list, err := users.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, u := range list {
		if err := e.AssignRole(ctx, u.Email(), u.Role()); err != nil {
			return err
		}
	}

	e.logger.Infow("user roles synced", "users", len(list))
	return nil
}
