package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sismaterial/helpdesk/internal/domain/shared/events"
	"github.com/sismaterial/helpdesk/internal/infrastructure/database"
	"github.com/sismaterial/helpdesk/internal/infrastructure/migration"
	httpRouter "github.com/sismaterial/helpdesk/internal/interfaces/http"
	"github.com/sismaterial/helpdesk/internal/interfaces/cli/common"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

const (
	eventBufferSize = 100
	shutdownTimeout = 30 * time.Second
)

var (
	env                string
	configPath         string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the helpdesk HTTP server: JSON API under /api/v1 and the ticket portal pages.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Create or update the SQL schema with gorm on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	e, err := common.Setup(mapEnvToGinMode(env), configPath)
	if err != nil {
		return err
	}
	cfg := e.Config
	log := e.Logger

	log.Infow("starting server",
		"environment", env,
		"storage", cfg.Storage.Driver,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	closeDB, err := e.OpenDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	if cfg.Storage.UsesSQL() {
		if err := handleMigrations(cfg.Storage.Driver, log); err != nil {
			return fmt.Errorf("migration handling failed: %w", err)
		}
	}

	eventDispatcher := events.NewInMemoryEventDispatcher(eventBufferSize, log.Named("events"))
	if err := eventDispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer func() {
		if err := eventDispatcher.Stop(); err != nil {
			log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	container, err := httpRouter.NewContainer(database.Get(), eventDispatcher, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(driver string, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}

		manager, err := migration.NewManager(driver, true, log)
		if err != nil {
			return err
		}
		if err := manager.Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	strategy, err := migration.NewGooseStrategy(driver, log)
	if err != nil {
		return err
	}
	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	if version == 0 {
		log.Warnw("database schema is empty, run `helpdesk migrate up` or start with --auto-migrate")
	}
	log.Infow("current migration version", "version", version)
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
