package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"zakat-tracker/config"
	"zakat-tracker/domain"
	"zakat-tracker/metrics"
	"zakat-tracker/repository"
)

const (
	NisabSourceStatic = "static"
	NisabSourceFeed   = "feed"
	NisabSourceCache  = "cache"

	goldPriceCacheKey = "nisab:gold_price_per_gram"
)

type goldFeedResponse struct {
	PricePerGram decimal.Decimal `json:"price_per_gram"`
}

// NisabService supplies the gold price and nisab threshold. Without a feed
// URL it always answers with the configured static price.
type NisabService struct {
	feedURL    string
	enabled    bool
	staticGold decimal.Decimal
	maxTries   uint
	cacheTTL   time.Duration
	httpClient *http.Client
	cache      repository.CacheRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewNisabService(
	cfg config.PricingConfig,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *NisabService {
	maxTries := cfg.FeedMaxTries
	if maxTries == 0 {
		maxTries = config.DefaultFeedMaxTries
	}
	timeout := cfg.FeedTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NisabService{
		feedURL:    cfg.GoldFeedURL,
		enabled:    cfg.GoldFeedURL != "",
		staticGold: cfg.GoldPrice(),
		maxTries:   maxTries,
		cacheTTL:   cfg.FeedCacheTTL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// Current returns the nisab reference for a calculation made now.
func (s *NisabService) Current(ctx context.Context) (domain.NisabReference, error) {
	if !s.enabled {
		return s.reference(s.staticGold, NisabSourceStatic), nil
	}

	if cached, ok := s.cache.Get(ctx, goldPriceCacheKey); ok {
		if price, err := decimal.NewFromString(cached); err == nil && price.IsPositive() {
			return s.reference(price, NisabSourceCache), nil
		}
		s.logger.Warn("ignoring malformed cached gold price", zap.String("value", cached))
	}

	price, err := s.fetchGoldPrice(ctx)
	if err != nil {
		s.logger.Warn("gold price feed unavailable, using static price",
			zap.String("feed_url", s.feedURL),
			zap.String("static_price", s.staticGold.String()),
			zap.Error(err))
		return s.reference(s.staticGold, NisabSourceStatic), nil
	}

	if err := s.cache.Set(ctx, goldPriceCacheKey, price.String(), s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache gold price", zap.Error(err))
	}
	return s.reference(price, NisabSourceFeed), nil
}

func (s *NisabService) reference(goldPrice decimal.Decimal, source string) domain.NisabReference {
	metrics.IncNisabLookup(source)
	return domain.NisabReference{
		GoldPricePerGram: goldPrice,
		NisabThreshold:   NisabFromGoldPrice(goldPrice),
		Source:           source,
		UpdatedAt:        s.now(),
	}
}

func (s *NisabService) fetchGoldPrice(ctx context.Context) (decimal.Decimal, error) {
	notify := func(err error, d time.Duration) {
		s.logger.Info("retrying gold price feed", zap.Error(err), zap.Duration("backoff", d))
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second

	return backoff.Retry(ctx, func() (decimal.Decimal, error) {
		return s.callFeed(ctx)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(s.maxTries),
		backoff.WithNotify(notify),
	)
}

func (s *NisabService) callFeed(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return decimal.Zero, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("feed error (status %d): %s", resp.StatusCode, string(body))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return decimal.Zero, backoff.Permanent(err)
		}
		return decimal.Zero, err
	}

	var feed goldFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("decode feed: %w", err))
	}
	if !feed.PricePerGram.IsPositive() {
		return decimal.Zero, backoff.Permanent(errors.New("feed returned a non-positive gold price"))
	}
	return feed.PricePerGram, nil
}
