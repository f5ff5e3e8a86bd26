package repository

import (
	"context"

	"zakat-tracker/domain"
)

type DoaRepository interface {
	Get(ctx context.Context, id string) (domain.Doa, error)
	List(ctx context.Context) ([]domain.Doa, error)
	Create(ctx context.Context, doa domain.Doa) error
	// Update applies fn to the stored doa under the repository lock. The
	// change is discarded when fn returns an error.
	Update(ctx context.Context, id string, fn func(*domain.Doa) error) (domain.Doa, error)
	Delete(ctx context.Context, id string) error
	AddReport(ctx context.Context, report domain.Report) error
	Reports(ctx context.Context, doaID string) ([]domain.Report, error)
	Templates(ctx context.Context) ([]domain.Template, error)
}

type UserRepository interface {
	Get(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
