package repository

import (
	"context"
	"sync"

	"zakat-tracker/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
type CalculationRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.CalculationRecord
}

// NewCalculationRepositoryMemory creates a new in-memory calculation history.
func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		data: []domain.CalculationRecord{},
	}
}

// Save appends the record to the history.
func (r *CalculationRepositoryMemory) Save(
	_ context.Context,
	record domain.CalculationRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

// ListByUser returns the user's records, newest first.
func (r *CalculationRepositoryMemory) ListByUser(
	_ context.Context,
	userID string,
	limit int,
) ([]domain.CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.CalculationRecord{}
	for i := len(r.data) - 1; i >= 0; i-- {
		if r.data[i].UserID != userID {
			continue
		}
		out = append(out, r.data[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
