package repository

import (
	"context"

	"zakat-tracker/domain"
)

type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.CalculationRecord, error)
}
