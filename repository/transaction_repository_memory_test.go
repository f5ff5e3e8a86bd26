package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zakat-tracker/domain"
)

func TestTransactionRepositoryMemory_OrderAndFilter(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := NewTransactionRepositoryMemory([]domain.Transaction{
		{ID: "old", Type: domain.ZakatTypeMal, Amount: decimal.NewFromInt(1), Date: base},
		{ID: "new", Type: domain.ZakatTypeFitrah, Amount: decimal.NewFromInt(2), Date: base.Add(time.Hour)},
	}, []domain.DonorRegion{{Region: "Jakarta", Count: 3}})
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, domain.Transaction{ID: "latest", Type: domain.ZakatTypeMal, Date: base.Add(2 * time.Hour)}))

	all, err := repo.List(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "latest", all[0].ID)
	assert.Equal(t, "new", all[1].ID)
	assert.Equal(t, "old", all[2].ID)

	mal, err := repo.List(ctx, domain.TransactionFilter{Type: domain.ZakatTypeMal, Limit: 1})
	require.NoError(t, err)
	require.Len(t, mal, 1)
	assert.Equal(t, "latest", mal[0].ID)

	regions, err := repo.DonorDistribution(ctx)
	require.NoError(t, err)
	regions[0].Count = 99
	again, _ := repo.DonorDistribution(ctx)
	assert.Equal(t, 3, again[0].Count)
}

func TestCalculationRepositoryMemory_ListByUser(t *testing.T) {
	repo := NewCalculationRepositoryMemory()
	ctx := context.Background()

	for _, rec := range []domain.CalculationRecord{
		{ID: "a", UserID: "user1"},
		{ID: "b", UserID: "user2"},
		{ID: "c", UserID: "user1"},
		{ID: "d", UserID: "user1"},
	} {
		require.NoError(t, repo.Save(ctx, rec))
	}

	records, err := repo.ListByUser(ctx, "user1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "d", records[0].ID)
	assert.Equal(t, "c", records[1].ID)

	none, err := repo.ListByUser(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
