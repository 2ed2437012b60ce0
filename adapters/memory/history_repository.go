package memory

import (
	"context"
	"fmt"
	"sync"

	"probcalc/domain/core"
	"probcalc/models"
	"probcalc/ports"

	"github.com/google/uuid"
)

// HistoryRepository keeps the most recent evaluations in a bounded ring
type HistoryRepository struct {
	mu       sync.RWMutex
	records  []*models.EvaluationRecord
	next     int
	capacity int
}

// NewHistoryRepository creates an in-memory history holding at most capacity records
func NewHistoryRepository(capacity int) ports.HistoryRepository {
	if capacity < 1 {
		capacity = 1
	}
	return &HistoryRepository{
		records:  make([]*models.EvaluationRecord, 0, capacity),
		capacity: capacity,
	}
}

// Record stores a copy of record, evicting the oldest once full
func (r *HistoryRepository) Record(ctx context.Context, record *models.EvaluationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := *record

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) < r.capacity {
		r.records = append(r.records, &stored)
		return nil
	}
	r.records[r.next] = &stored
	r.next = (r.next + 1) % r.capacity
	return nil
}

// Recent returns up to limit records, newest first
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]*models.EvaluationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.records)
	if limit <= 0 || limit > n {
		limit = n
	}

	// the newest record sits just before next once the ring has wrapped
	newest := n - 1
	if n == r.capacity {
		newest = (r.next - 1 + n) % n
	}

	out := make([]*models.EvaluationRecord, 0, limit)
	for i := 0; i < limit; i++ {
		rec := *r.records[(newest-i+n)%n]
		out = append(out, &rec)
	}
	return out, nil
}

// Get returns the record with the given id
func (r *HistoryRepository) Get(ctx context.Context, id uuid.UUID) (*models.EvaluationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			found := *rec
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: evaluation %s", core.ErrNotFound, id)
}
