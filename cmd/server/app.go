package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mdci-projets/bank-account/internal/adapter/http"
	"github.com/mdci-projets/bank-account/internal/adapter/http/handler"
	"github.com/mdci-projets/bank-account/internal/adapter/http/middleware"
	postgresRepo "github.com/mdci-projets/bank-account/internal/adapter/repository/postgres"
	redisRepo "github.com/mdci-projets/bank-account/internal/adapter/repository/redis"
	sqliteRepo "github.com/mdci-projets/bank-account/internal/adapter/repository/sqlite"
	"github.com/mdci-projets/bank-account/internal/infrastructure/config"
	"github.com/mdci-projets/bank-account/internal/infrastructure/metrics"
	"github.com/mdci-projets/bank-account/internal/infrastructure/postgres"
	"github.com/mdci-projets/bank-account/internal/infrastructure/redis"
	"github.com/mdci-projets/bank-account/internal/infrastructure/retry"
	"github.com/mdci-projets/bank-account/internal/infrastructure/sqlite"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

const rateLimiterCleanupInterval = 5 * time.Minute

// app is the wired HTTP handler and the resources it holds.
type app struct {
	handler http.Handler
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// storage bundles the repositories of one database driver.
type storage struct {
	txManager  usecase.TransactionManager
	accounts   usecase.AccountRepository
	operations usecase.OperationRepository
	history    usecase.HistoryRepository
	ledger     usecase.LedgerRepository
	retryable  retry.Classifier
	ping       handler.Check
	close      func()
}

func newApp(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger, reg prometheus.Registerer) (*app, error) {
	a := &app{}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.close)

	checks := map[string]handler.Check{cfg.DatabaseDriver: store.ping}

	domainMetrics := metrics.New(reg)
	retrier := retry.New(store.retryable, cfg.RetryMaxAttempts, appLogger)

	opts := []usecase.Option{
		usecase.WithLookback(cfg.StatementLookback),
		usecase.WithRetrier(retrier),
		usecase.WithMetrics(domainMetrics),
		usecase.WithLogger(appLogger),
	}

	// Redis is optional: without it there is no idempotency and no statement cache.
	var idempotencyStore usecase.IdempotencyStore
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { redisClient.Close() })

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		opts = append(opts, usecase.WithStatementCache(redisRepo.NewStatementCache(redisClient), cfg.StatementCacheTTL))
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("REDIS_URL not set: idempotency and statement cache disabled")
	}

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(store.txManager, store.accounts, store.operations, store.history, postgresRepo.NewULIDGenerator(), opts...)
	statementUC := usecase.NewStatementUseCase(store.accounts, store.history, opts...)
	reconciliationUC := usecase.NewReconciliationUseCase(store.ledger, opts...)

	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC),
		OperationHandler:      handler.NewOperationHandler(accountUC),
		StatementHandler:      handler.NewStatementHandler(statementUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(checks),
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		Logger:                &appLogger,
	}

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiterCtx, cancel := context.WithCancel(context.Background())
		go limiter.Run(limiterCtx, rateLimiterCleanupInterval)
		a.closers = append(a.closers, cancel)
		routerCfg.RateLimiter = limiter
	}

	a.handler = httpAdapter.NewRouter(routerCfg)
	return a, nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		return openSQLite(ctx, cfg)
	default:
		return openPostgres(ctx, cfg)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, postgres.MigrationsDir(cfg.MigrationsPath)); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	log.Info().Msg("connected to postgres")

	return &storage{
		txManager:  postgresRepo.NewTxManager(pool),
		accounts:   postgresRepo.NewAccountRepository(pool),
		operations: postgresRepo.NewOperationRepository(),
		history:    postgresRepo.NewHistoryRepository(pool),
		ledger:     postgresRepo.NewLedgerRepository(pool),
		retryable:  postgresRepo.IsRetryableError,
		ping:       pool.Ping,
		close:      pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config) (*storage, error) {
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite database")

	if cfg.RunMigrations {
		if err := sqlite.RunMigrations(db, sqlite.MigrationsDir(cfg.MigrationsPath)); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &storage{
		txManager:  sqliteRepo.NewTxManager(db),
		accounts:   sqliteRepo.NewAccountRepository(db),
		operations: sqliteRepo.NewOperationRepository(),
		history:    sqliteRepo.NewHistoryRepository(db),
		ledger:     sqliteRepo.NewLedgerRepository(db),
		retryable:  sqliteRepo.IsRetryableError,
		ping:       db.PingContext,
		close:      func() { db.Close() },
	}, nil
}
