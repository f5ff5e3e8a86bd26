package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"zakat-tracker/config"
	httpLayer "zakat-tracker/http"
	"zakat-tracker/logger"
	"zakat-tracker/metrics"
	"zakat-tracker/repository"
	"zakat-tracker/service"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	configPath := flag.String("config", os.Getenv("ZAKAT_CONFIG"), "path to an optional YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "zakat-tracker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed, err := repository.DefaultSeed(time.Now())
	if err != nil {
		return err
	}

	cache, closeCache, err := newCache(ctx, cfg.Cache, log)
	if err != nil {
		return err
	}
	defer closeCache()

	nisabService := service.NewNisabService(cfg.Pricing, cache, log)
	zakatService := service.NewZakatService(
		repository.NewCalculationRepositoryMemory(),
		cache,
		nisabService,
		cfg.Cache.TTL,
		log,
	)
	donationService := service.NewDonationService(
		repository.NewTransactionRepositoryMemory(seed.Transactions, seed.Distribution),
		log,
	)
	doaService := service.NewDoaService(
		repository.NewDoaRepositoryMemory(seed.Doas, seed.Templates),
		repository.NewUserRepositoryMemory(seed.Users),
		log,
	)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Zakat:    httpLayer.NewZakatHandler(zakatService, log),
		Donation: httpLayer.NewDonationHandler(donationService, log),
		Doa:      httpLayer.NewDoaHandler(doaService, log),
	}, rateLimiter, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("zakat-tracker listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}
	log.Info("server exited")
	return nil
}

// newCache returns Redis when an address is configured, otherwise an
// in-process cache.
func newCache(ctx context.Context, cfg config.CacheConfig, log *zap.Logger) (repository.CacheRepository, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("using in-memory cache")
		mc := repository.NewMemoryCache()
		return mc, mc.Stop, nil
	}

	rc := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err := rc.Ping(ctx, cfg.PingMaxTries); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}
	log.Info("using redis cache", zap.String("addr", cfg.RedisAddr))
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Warn("failed to close redis", zap.Error(err))
		}
	}, nil
}
