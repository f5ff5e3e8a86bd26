package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"zakat-tracker/domain"
	"zakat-tracker/metrics"
	"zakat-tracker/repository"
)

// NisabProvider supplies the reference threshold for zakat mal.
type NisabProvider interface {
	Current(ctx context.Context) (domain.NisabReference, error)
}

type ZakatService struct {
	repo     repository.CalculationRepository
	cache    repository.CacheRepository
	nisab    NisabProvider
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewZakatService creates a ZakatService backed by the given history, cache and nisab provider.
func NewZakatService(
	repo repository.CalculationRepository,
	cache repository.CacheRepository,
	nisab NisabProvider,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ZakatService {
	return &ZakatService{
		repo:     repo,
		cache:    cache,
		nisab:    nisab,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// CalculateZakatMal validates the input, resolves the nisab threshold when it
// is not supplied and computes asset zakat.
func (s *ZakatService) CalculateZakatMal(
	ctx context.Context,
	userID string,
	input domain.ZakatMalInput,
) (domain.ZakatMalResult, error) {
	start := time.Now()

	if err := validateMalInput(input); err != nil {
		metrics.ObserveCalculation(domain.ZakatTypeMal, metrics.ResultInvalid, time.Since(start))
		return domain.ZakatMalResult{}, err
	}

	nisab := input.NisabThreshold
	if nisab.IsZero() {
		ref, err := s.nisab.Current(ctx)
		if err != nil {
			metrics.ObserveCalculation(domain.ZakatTypeMal, metrics.ResultError, time.Since(start))
			return domain.ZakatMalResult{}, fmt.Errorf("resolve nisab: %w", err)
		}
		nisab = ref.NisabThreshold
		input.NisabThreshold = nisab
	}

	key := cacheKey(domain.ZakatTypeMal, input.TotalAssets.String(), input.TotalDebts.String(), nisab.String())

	var result domain.ZakatMalResult
	outcome := metrics.ResultSuccess
	if s.loadCached(ctx, key, &result) {
		outcome = metrics.ResultCached
	} else {
		result = CalculateZakatMal(input.TotalAssets, input.TotalDebts, nisab)
		s.storeCached(ctx, key, result)
	}

	s.saveRecord(ctx, domain.CalculationRecord{
		UserID:    userID,
		Type:      domain.ZakatTypeMal,
		MalInput:  &input,
		MalResult: &result,
	})

	metrics.ObserveCalculation(domain.ZakatTypeMal, outcome, time.Since(start))
	s.logger.Debug("zakat mal calculated",
		zap.String("user_id", userID),
		zap.String("net_assets", result.NetAssets.String()),
		zap.Bool("eligible", result.IsEligible),
		zap.String("outcome", outcome))

	return result, nil
}

// CalculateZakatFitrah validates the input and computes fitrah for a household.
func (s *ZakatService) CalculateZakatFitrah(
	ctx context.Context,
	userID string,
	input domain.ZakatFitrahInput,
) (domain.ZakatFitrahResult, error) {
	start := time.Now()

	if input.FamilyMembers > MaxFamilyMembers {
		metrics.ObserveCalculation(domain.ZakatTypeFitrah, metrics.ResultInvalid, time.Since(start))
		return domain.ZakatFitrahResult{}, domain.NewValidationError("family_members",
			fmt.Sprintf("family member count exceeds the maximum of %d", MaxFamilyMembers))
	}
	if input.RicePricePerKg.GreaterThan(MaxAmount) {
		metrics.ObserveCalculation(domain.ZakatTypeFitrah, metrics.ResultInvalid, time.Since(start))
		return domain.ZakatFitrahResult{}, domain.NewValidationError("rice_price_per_kg",
			"rice price exceeds the maximum allowed amount")
	}

	key := cacheKey(domain.ZakatTypeFitrah, strconv.Itoa(input.FamilyMembers), input.RicePricePerKg.String())

	var result domain.ZakatFitrahResult
	outcome := metrics.ResultSuccess
	if s.loadCached(ctx, key, &result) {
		outcome = metrics.ResultCached
	} else {
		var err error
		result, err = CalculateZakatFitrah(input.FamilyMembers, input.RicePricePerKg)
		if err != nil {
			metrics.ObserveCalculation(domain.ZakatTypeFitrah, metrics.ResultInvalid, time.Since(start))
			return domain.ZakatFitrahResult{}, err
		}
		s.storeCached(ctx, key, result)
	}

	s.saveRecord(ctx, domain.CalculationRecord{
		UserID:       userID,
		Type:         domain.ZakatTypeFitrah,
		FitrahInput:  &input,
		FitrahResult: &result,
	})

	metrics.ObserveCalculation(domain.ZakatTypeFitrah, outcome, time.Since(start))
	return result, nil
}

// History returns the user's most recent calculations, newest first.
func (s *ZakatService) History(
	ctx context.Context,
	userID string,
	limit int,
) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLen
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	records, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Nisab returns the reference the service would use for a calculation now.
func (s *ZakatService) Nisab(ctx context.Context) (domain.NisabReference, error) {
	return s.nisab.Current(ctx)
}

func validateMalInput(input domain.ZakatMalInput) error {
	if input.TotalAssets.IsNegative() {
		return domain.NewValidationError("total_assets", "total assets must not be negative")
	}
	if input.TotalDebts.IsNegative() {
		return domain.NewValidationError("total_debts", "total debts must not be negative")
	}
	if input.NisabThreshold.IsNegative() {
		return domain.NewValidationError("nisab_threshold", "nisab threshold must be positive")
	}
	if input.TotalAssets.GreaterThan(MaxAmount) ||
		input.TotalDebts.GreaterThan(MaxAmount) ||
		input.NisabThreshold.GreaterThan(MaxAmount) {
		return domain.NewValidationError("amount", "amount exceeds the maximum allowed value")
	}
	return nil
}

func cacheKey(kind string, parts ...string) string {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(p)
		_, _ = h.WriteString("|")
	}
	return "calc:" + kind + ":" + strconv.FormatUint(h.Sum64(), 16)
}

func (s *ZakatService) loadCached(ctx context.Context, key string, out any) bool {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("discarding malformed cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *ZakatService) storeCached(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache calculation", zap.String("key", key), zap.Error(err))
	}
}

// saveRecord appends to the history. Failures are not critical to the caller.
func (s *ZakatService) saveRecord(ctx context.Context, record domain.CalculationRecord) {
	record.ID = uuid.NewString()
	record.CreatedAt = s.now()
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn("failed to save calculation", zap.String("type", record.Type), zap.Error(err))
	}
}

var _ NisabProvider = (*NisabService)(nil)
