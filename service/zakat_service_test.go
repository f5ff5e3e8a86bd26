package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zakat-tracker/domain"
	"zakat-tracker/repository"
)

func newZakatService(repo *MockCalculationRepository, nisab *MockNisabProvider) *ZakatService {
	return NewZakatService(repo, repository.NewMemoryCache(), nisab, time.Minute, zap.NewNop())
}

func goldReference() domain.NisabReference {
	gold := decimal.NewFromInt(1050000)
	return domain.NisabReference{
		GoldPricePerGram: gold,
		NisabThreshold:   NisabFromGoldPrice(gold),
		Source:           NisabSourceStatic,
	}
}

func TestZakatService_CalculateZakatMal_SuppliedNisab(t *testing.T) {
	repo := &MockCalculationRepository{}
	nisab := &MockNisabProvider{Ref: goldReference()}
	svc := newZakatService(repo, nisab)

	result, err := svc.CalculateZakatMal(context.Background(), "user1", domain.ZakatMalInput{
		TotalAssets:    d(120000000),
		TotalDebts:     d(20000000),
		NisabThreshold: d(85000000),
	})

	require.NoError(t, err)
	assert.True(t, result.IsEligible)
	assert.True(t, result.ZakatAmount.Equal(d(2500000)))
	assert.Equal(t, 0, nisab.Calls)

	require.Len(t, repo.Saved, 1)
	saved := repo.Saved[0]
	assert.Equal(t, "user1", saved.UserID)
	assert.Equal(t, domain.ZakatTypeMal, saved.Type)
	assert.NotEmpty(t, saved.ID)
	require.NotNil(t, saved.MalResult)
	assert.True(t, saved.MalResult.NetAssets.Equal(d(100000000)))
}

func TestZakatService_CalculateZakatMal_ResolvesNisab(t *testing.T) {
	repo := &MockCalculationRepository{}
	nisab := &MockNisabProvider{Ref: goldReference()}
	svc := newZakatService(repo, nisab)

	result, err := svc.CalculateZakatMal(context.Background(), "user1", domain.ZakatMalInput{
		TotalAssets: d(100000000),
		TotalDebts:  d(20000000),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, nisab.Calls)
	assert.True(t, result.NisabThreshold.Equal(d(89250000)))
	assert.False(t, result.IsEligible)
	assert.True(t, result.ZakatAmount.IsZero())
	assert.True(t, repo.Saved[0].MalInput.NisabThreshold.Equal(d(89250000)))
}

func TestZakatService_CalculateZakatMal_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.ZakatMalInput
	}{
		{"negative assets", domain.ZakatMalInput{TotalAssets: d(-1), NisabThreshold: d(1)}},
		{"negative debts", domain.ZakatMalInput{TotalAssets: d(1), TotalDebts: d(-1), NisabThreshold: d(1)}},
		{"negative nisab", domain.ZakatMalInput{TotalAssets: d(1), NisabThreshold: d(-1)}},
		{"too large", domain.ZakatMalInput{TotalAssets: MaxAmount.Add(d(1)), NisabThreshold: d(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCalculationRepository{}
			svc := newZakatService(repo, &MockNisabProvider{Ref: goldReference()})

			_, err := svc.CalculateZakatMal(context.Background(), "user1", tt.input)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.False(t, repo.SaveCalled, "repository Save should NOT be called")
		})
	}
}

func TestZakatService_CalculateZakatMal_NisabProviderError(t *testing.T) {
	svc := newZakatService(&MockCalculationRepository{}, &MockNisabProvider{Err: errors.New("feed down")})

	_, err := svc.CalculateZakatMal(context.Background(), "user1", domain.ZakatMalInput{TotalAssets: d(1)})

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestZakatService_CalculateZakatMal_UsesCache(t *testing.T) {
	repo := &MockCalculationRepository{}
	cache := repository.NewMemoryCache()
	svc := NewZakatService(repo, cache, &MockNisabProvider{}, time.Minute, zap.NewNop())

	key := cacheKey(domain.ZakatTypeMal, "1000", "0", "10")
	require.NoError(t, cache.Set(context.Background(), key,
		`{"NetAssets":"1000","NisabThreshold":"10","IsEligible":true,"ZakatAmount":"42"}`, 0))

	result, err := svc.CalculateZakatMal(context.Background(), "user1", domain.ZakatMalInput{
		TotalAssets:    d(1000),
		NisabThreshold: d(10),
	})

	require.NoError(t, err)
	assert.True(t, result.ZakatAmount.Equal(d(42)))
	assert.True(t, repo.SaveCalled)
}

func TestZakatService_CalculateZakatMal_RepeatedCallsAgree(t *testing.T) {
	svc := newZakatService(&MockCalculationRepository{}, &MockNisabProvider{})
	input := domain.ZakatMalInput{TotalAssets: d(85000000), NisabThreshold: d(85000000)}

	first, err := svc.CalculateZakatMal(context.Background(), "user1", input)
	require.NoError(t, err)
	second, err := svc.CalculateZakatMal(context.Background(), "user1", input)
	require.NoError(t, err)

	assert.True(t, first.ZakatAmount.Equal(second.ZakatAmount))
	assert.True(t, second.ZakatAmount.Equal(d(2125000)))
	assert.True(t, second.IsEligible)
}

func TestZakatService_InfrastructureFailuresAreNotFatal(t *testing.T) {
	repo := &MockCalculationRepository{ForceError: true}
	svc := NewZakatService(repo, FailingCache{}, &MockNisabProvider{}, time.Minute, zap.NewNop())

	result, err := svc.CalculateZakatFitrah(context.Background(), "user1", domain.ZakatFitrahInput{
		FamilyMembers:  4,
		RicePricePerKg: d(15000),
	})

	require.NoError(t, err)
	assert.True(t, result.ZakatAmount.Equal(d(150000)))
	assert.True(t, repo.SaveCalled)
}

func TestZakatService_CalculateZakatFitrah(t *testing.T) {
	repo := &MockCalculationRepository{}
	svc := newZakatService(repo, &MockNisabProvider{})

	result, err := svc.CalculateZakatFitrah(context.Background(), "user2", domain.ZakatFitrahInput{
		FamilyMembers:  4,
		RicePricePerKg: d(15000),
	})

	require.NoError(t, err)
	assert.True(t, result.RiceWeightKg.Equal(d(10)))
	assert.True(t, result.ZakatAmount.Equal(d(150000)))
	require.Len(t, repo.Saved, 1)
	assert.Equal(t, domain.ZakatTypeFitrah, repo.Saved[0].Type)
	assert.Equal(t, 4, repo.Saved[0].FitrahInput.FamilyMembers)
}

func TestZakatService_CalculateZakatFitrah_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input domain.ZakatFitrahInput
	}{
		{"zero members", domain.ZakatFitrahInput{FamilyMembers: 0, RicePricePerKg: d(15000)}},
		{"zero price", domain.ZakatFitrahInput{FamilyMembers: 4}},
		{"too many members", domain.ZakatFitrahInput{FamilyMembers: MaxFamilyMembers + 1, RicePricePerKg: d(15000)}},
		{"price too large", domain.ZakatFitrahInput{FamilyMembers: 1, RicePricePerKg: MaxAmount.Add(d(1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCalculationRepository{}
			svc := newZakatService(repo, &MockNisabProvider{})

			result, err := svc.CalculateZakatFitrah(context.Background(), "user1", tt.input)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, domain.ZakatFitrahResult{}, result)
			assert.False(t, repo.SaveCalled)
		})
	}
}

func TestZakatService_History(t *testing.T) {
	repo := &MockCalculationRepository{}
	svc := newZakatService(repo, &MockNisabProvider{})
	ctx := context.Background()

	for members := 1; members <= 3; members++ {
		_, err := svc.CalculateZakatFitrah(ctx, "user1", domain.ZakatFitrahInput{
			FamilyMembers:  members,
			RicePricePerKg: d(15000),
		})
		require.NoError(t, err)
	}
	_, err := svc.CalculateZakatFitrah(ctx, "user2", domain.ZakatFitrahInput{FamilyMembers: 9, RicePricePerKg: d(1)})
	require.NoError(t, err)

	records, err := svc.History(ctx, "user1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 3, records[0].FitrahInput.FamilyMembers)
	assert.Equal(t, 2, records[1].FitrahInput.FamilyMembers)

	all, err := svc.History(ctx, "user1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
