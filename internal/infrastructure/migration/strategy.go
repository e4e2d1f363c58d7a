package migration

import (
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

//go:embed scripts/sqlite/*.sql scripts/mysql/*.sql
var scriptsFS embed.FS

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(db *gorm.DB, models ...interface{}) error
	// GetName returns the strategy name
	GetName() string
}

// GormAutoMigrateStrategy derives the schema from the gorm models.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) Strategy {
	return &GormAutoMigrateStrategy{
		logger: log.With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto migration", "models_count", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GooseStrategy applies the embedded versioned SQL scripts for one driver.
type GooseStrategy struct {
	driver string
	logger logger.Interface
}

// NewGooseStrategy accepts "sqlite" or "mysql".
func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	switch driver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("no migration scripts for driver %q", driver)
	}
	return &GooseStrategy{
		driver: driver,
		logger: log.With("component", "migration.goose"),
	}, nil
}

func (s *GooseStrategy) dialect() string {
	if s.driver == "sqlite" {
		return "sqlite3"
	}
	return "mysql"
}

func (s *GooseStrategy) dir() string {
	return "scripts/" + s.driver
}

// withGoose runs fn with goose configured for this strategy.
func (s *GooseStrategy) withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(scriptsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(s.dialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn()
}

func (s *GooseStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting goose migration", "driver", s.driver)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		currentVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			s.logger.Errorw("failed to get current version", "error", err)
			return fmt.Errorf("failed to get current version: %w", err)
		}

		if err := goose.Up(sqlDB, s.dir()); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		finalVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}

		s.logger.Infow("migration completed successfully",
			"from_version", currentVersion,
			"to_version", finalVersion)
		return nil
	})
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var version int64
	err = s.withGoose(func() error {
		v, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// Status prints the applied state of every script through goose's logger.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		if err := goose.Status(sqlDB, s.dir()); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the last steps applied scripts.
func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		for i := 0; i < steps; i++ {
			if err := goose.Down(sqlDB, s.dir()); err != nil {
				return fmt.Errorf("failed to roll back migration %d of %d: %w", i+1, steps, err)
			}
		}
		s.logger.Infow("rolled back migrations", "steps", steps)
		return nil
	})
}
