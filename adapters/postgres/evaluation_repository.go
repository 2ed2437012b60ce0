package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"probcalc/domain/core"
	"probcalc/internal/errors"
	"probcalc/models"
	"probcalc/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// EvaluationRepositoryImpl implements HistoryRepository for PostgreSQL
type EvaluationRepositoryImpl struct {
	db *sqlx.DB
}

// NewEvaluationRepository creates a new PostgreSQL evaluation history repository
func NewEvaluationRepository(db *sqlx.DB) ports.HistoryRepository {
	return &EvaluationRepositoryImpl{db: db}
}

// Record inserts one evaluation
func (r *EvaluationRepositoryImpl) Record(ctx context.Context, record *models.EvaluationRecord) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO evaluations (
			id, kind, mode, params, probability, headline, created_at
		) VALUES (
			:id, :kind, :mode, :params, :probability, :headline, :created_at
		)
	`, record)
	if err != nil {
		return errors.DatabaseError("failed to record evaluation", err)
	}
	return nil
}

// Recent returns the newest evaluations first
func (r *EvaluationRepositoryImpl) Recent(ctx context.Context, limit int) ([]*models.EvaluationRecord, error) {
	var records []*models.EvaluationRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, kind, mode, params, probability, headline, created_at
		FROM evaluations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list evaluations", err)
	}
	return records, nil
}

// Get retrieves an evaluation by ID
func (r *EvaluationRepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.EvaluationRecord, error) {
	var record models.EvaluationRecord
	err := r.db.GetContext(ctx, &record, `
		SELECT id, kind, mode, params, probability, headline, created_at
		FROM evaluations
		WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: evaluation %s", core.ErrNotFound, id)
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to get evaluation", err)
	}
	return &record, nil
}
