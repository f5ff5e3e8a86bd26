package repository

import (
	"context"

	"zakat-tracker/domain"
)

type TransactionRepository interface {
	Add(ctx context.Context, tx domain.Transaction) error
	List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
	DonorDistribution(ctx context.Context) ([]domain.DonorRegion, error)
}
