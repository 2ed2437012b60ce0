package container

import (
	"context"
	"fmt"

	"probcalc/adapters/memory"
	"probcalc/adapters/postgres"
	"probcalc/app"
	"probcalc/internal"
	"probcalc/internal/config"
	"probcalc/internal/evaluator"
	"probcalc/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure, nil when running without a database
	DB *sqlx.DB

	History    ports.HistoryRepository
	Calculator *app.CalculatorService
}

// New creates a container backed by the in-memory history
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		History: memory.NewHistoryRepository(cfg.Engine.HistoryLimit),
	}
	c.Calculator = app.NewCalculatorService(c.History, logger).WithLimits(limits(cfg))
	return c, nil
}

// InitWithDatabase switches the history to PostgreSQL
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.History = postgres.NewEvaluationRepository(db)
	c.Calculator = app.NewCalculatorService(c.History, c.Logger).WithLimits(limits(c.Config))

	c.Logger.Info("evaluation history stored in PostgreSQL")
	return nil
}

func limits(cfg *config.Config) evaluator.Limits {
	return evaluator.Limits{
		MaxCount:  cfg.Engine.MaxCount,
		MaxLambda: cfg.Engine.MaxLambda,
	}
}

// Shutdown releases held resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
