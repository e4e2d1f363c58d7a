// Package common holds the setup shared by the CLI commands.
package common

import (
	"fmt"

	"github.com/sismaterial/helpdesk/internal/infrastructure/config"
	"github.com/sismaterial/helpdesk/internal/infrastructure/database"
	"github.com/sismaterial/helpdesk/internal/infrastructure/persistence"
	"github.com/sismaterial/helpdesk/internal/shared/biztime"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// Env is the loaded configuration and logger of one command run.
type Env struct {
	Config *config.Config
	Logger logger.Interface
}

// Setup loads configuration and initializes the logger and business timezone.
func Setup(env, configPath string) (*Env, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Business.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return &Env{Config: cfg, Logger: logger.NewLogger()}, nil
}

// OpenDatabase connects when the configured driver is SQL. The returned
// close func is always safe to call.
func (e *Env) OpenDatabase() (func(), error) {
	if !e.Config.Storage.UsesSQL() {
		return func() {}, nil
	}
	if err := database.Init(e.Config.Storage.Driver, &e.Config.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return func() {
		if err := database.Close(); err != nil {
			e.Logger.Warnw("failed to close database", "error", err)
		}
	}, nil
}

// Stores opens the configured user and ticket stores. OpenDatabase must run first.
func (e *Env) Stores() (*persistence.Stores, error) {
	return persistence.NewStores(&e.Config.Storage, database.Get(), e.Logger)
}

// RequireSQL fails for commands that only make sense on the SQL backend.
func (e *Env) RequireSQL(command string) error {
	if !e.Config.Storage.UsesSQL() {
		return fmt.Errorf("%s needs storage.driver sqlite or mysql, got %q", command, e.Config.Storage.Driver)
	}
	return nil
}
