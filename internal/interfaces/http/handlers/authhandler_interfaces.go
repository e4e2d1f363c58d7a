package handlers

import (
	"context"
	"time"

	"github.com/sismaterial/helpdesk/internal/application/user/dto"
	"github.com/sismaterial/helpdesk/internal/application/user/usecases"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type authenticateUseCase interface {
	Execute(ctx context.Context, cmd usecases.AuthenticateCommand) (*dto.SessionDTO, error)
}

// sessionRevoker ends a session before its token expires.
type sessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error
}

// LoginRecorder counts login outcomes.
type LoginRecorder interface {
	LoginAttempt(outcome string)
}

type nopLoginRecorder struct{}

func (nopLoginRecorder) LoginAttempt(string) {}
