package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httpadp "eventflow-backend/internal/adapter/http"
	"eventflow-backend/internal/adapter/repository/gormrepo"
	"eventflow-backend/internal/config"
	"eventflow-backend/internal/domain/workflow"
	"eventflow-backend/internal/infrastructure/cache"
	"eventflow-backend/internal/infrastructure/db"
	"eventflow-backend/internal/infrastructure/logging"
	"eventflow-backend/internal/infrastructure/queue"
	approvaluc "eventflow-backend/internal/usecase/approval"
	eventuc "eventflow-backend/internal/usecase/event"
	"eventflow-backend/internal/worker"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		logger.Fatal("open redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	events := gormrepo.NewEventRepository(gdb)
	records := gormrepo.NewLedgerRepository(gdb)
	engine := workflow.NewEngine(workflow.MonetaryBranch)
	deferred := queue.NewLedgerQueue(rdb, cfg.LedgerQueueKey)

	decisions := approvaluc.NewUsecase(gormrepo.NewGormUoW(gdb), engine, deferred, approvaluc.Options{
		MaxRetries: cfg.ApprovalMaxRetries,
		Backoff:    cfg.ApprovalRetryBackoff,
		Logger:     logger.Named("approval"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workers := worker.NewManager(logger.Named("worker"))
	workers.Register(worker.NewLedgerRetry(deferred, records, logger.Named("ledger-retry"),
		cfg.LedgerRetryMaxAttempts, cfg.LedgerRetryPopTimeout))
	if err := workers.StartAll(ctx); err != nil {
		logger.Fatal("start workers", zap.Error(err))
	}

	e := httpadp.NewRouter(httpadp.RouterDeps{
		Events:         eventuc.NewUsecase(events, records, engine),
		Decisions:      decisions,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		Logger:         logger.Named("http"),
	})

	addr := ":" + cfg.AppPort
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("branch_policy", engine.Policy().String()))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	workers.StopAll()
}
