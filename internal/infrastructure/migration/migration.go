// Package migration owns the SQL schema of the helpdesk database.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose scripts by default and gorm AutoMigrate when
// autoMigrate is set (development databases).
func NewManager(driver string, autoMigrate bool, log logger.Interface) (*Manager, error) {
	if autoMigrate {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy(log), log), nil
	}
	strategy, err := NewGooseStrategy(driver, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	models := AutoMigrateModels()
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
