package ports

import (
	"context"

	"probcalc/models"

	"github.com/google/uuid"
)

// HistoryRepository defines the interface for evaluation history operations
type HistoryRepository interface {
	// Record stores one evaluation
	Record(ctx context.Context, record *models.EvaluationRecord) error

	// Recent returns up to limit evaluations, newest first
	Recent(ctx context.Context, limit int) ([]*models.EvaluationRecord, error)

	// Get returns a single evaluation, or an error wrapping core.ErrNotFound
	Get(ctx context.Context, id uuid.UUID) (*models.EvaluationRecord, error)
}
