package http

import (
	"context"
	"fmt"
	"time"

	"github.com/sismaterial/helpdesk/internal/infrastructure/auth"
	"github.com/sismaterial/helpdesk/internal/infrastructure/cache"
	"github.com/sismaterial/helpdesk/internal/infrastructure/email"
	"github.com/sismaterial/helpdesk/internal/infrastructure/metrics"
	"github.com/sismaterial/helpdesk/internal/infrastructure/permission"
	"github.com/sismaterial/helpdesk/internal/infrastructure/ratelimit"
	"github.com/sismaterial/helpdesk/internal/shared/services/markdown"
)

const (
	redisConnectTimeout   = 5 * time.Second
	revokedSessionsPrefix = "helpdesk:revoked:"
	loginRateLimitPrefix  = "helpdesk:ratelimit:"
)

// initInfrastructure opens the stores and the services shared by every handler.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	repos, err := c.newRepositories()
	if err != nil {
		return err
	}
	c.repos = repos

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.renderer = markdown.NewRenderer()
	c.metrics = metrics.New()

	if !cfg.Redis.Enabled {
		c.revoked = cache.NewMemoryRevokedSessions()
		c.log.Infow("redis disabled, session revocation and rate limits are per process")
		return nil
	}

	client, err := cache.NewRedisClient(context.Background(), &cfg.Redis, redisConnectTimeout)
	if err != nil {
		return err
	}
	c.redis = client
	c.revoked = cache.NewRedisRevokedSessions(client, revokedSessionsPrefix)
	c.log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())
	return nil
}

// initAuthorization loads the RBAC policy and links every stored user to its role.
func (c *Container) initAuthorization() error {
	var (
		enforcer *permission.Enforcer
		err      error
	)
	if c.db != nil {
		enforcer, err = permission.NewEnforcer(c.db, c.log.Named("permission"))
	} else {
		enforcer, err = permission.NewMemoryEnforcer(c.log.Named("permission"))
	}
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}

	if err := enforcer.InitPolicies(); err != nil {
		return err
	}
	if err := enforcer.SyncUserRoles(context.Background(), c.repos.userRepo); err != nil {
		return err
	}

	c.enforcer = enforcer
	return nil
}

// initNotifications subscribes the email notifier when SMTP is configured.
func (c *Container) initNotifications() error {
	cfg := c.cfg.Email
	if !cfg.Enabled {
		c.log.Infow("email notifications disabled")
		return nil
	}

	sender := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	})
	notifier := email.NewTicketNotifier(sender, cfg.SupportInbox, c.cfg.Server.BaseURL, c.log.Named("email.notifier"))
	if err := notifier.Register(c.dispatcher); err != nil {
		return err
	}

	c.log.Infow("email notifications enabled",
		"smtp_host", cfg.SMTPHost,
		"support_inbox", len(cfg.SupportInbox))
	return nil
}

// newLoginLimiter shares counts through redis when it is available.
func (c *Container) newLoginLimiter() ratelimit.RateLimiter {
	rl := ratelimit.Config{
		Limit:  c.cfg.Auth.RateLimit.LoginAttempts,
		Window: c.cfg.Auth.RateLimit.Window(),
	}
	if c.redis != nil {
		return ratelimit.NewRedisRateLimiter(c.redis, loginRateLimitPrefix, rl)
	}
	return ratelimit.NewMemoryRateLimiter(rl)
}
