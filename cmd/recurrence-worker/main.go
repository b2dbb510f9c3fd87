package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	postgresRepo "github.com/iho/finledger/internal/adapter/repository/postgres"
	"github.com/iho/finledger/internal/infrastructure/config"
	"github.com/iho/finledger/internal/infrastructure/logging"
	"github.com/iho/finledger/internal/infrastructure/postgres"
	"github.com/iho/finledger/internal/usecase"
)

const workerActor = "recurrence-worker"

func main() {
	// Load .env for local development, ignore when absent
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	logger.Info("starting recurrence worker",
		"interval", cfg.RecurrenceInterval,
		"sweep_interval", cfg.OperationLogSweep)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	recurrenceRepo := postgresRepo.NewRecurrenceRepository(pool)
	operationRepo := postgresRepo.NewOperationLogRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	recurrenceUC := usecase.NewRecurrenceUseCase(txManager, accountRepo, transactionRepo, recurrenceRepo, auditRepo, idGen, nil)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runGenerator(ctx, logger, recurrenceUC, retrier, cfg.RecurrenceInterval)
	})

	g.Go(func() error {
		return runSweeper(ctx, logger, operationRepo, cfg.OperationLogSweep)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("recurrence worker stopped")
}

// runGenerator materializes due recurrence templates once per interval. The
// template's once-per-month guard makes repeated runs within a month harmless.
func runGenerator(ctx context.Context, logger *logging.Logger, uc *usecase.RecurrenceUseCase, retrier *postgresRepo.Retrier, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	generate := func(now time.Time) {
		var count int
		err := retrier.Retry(ctx, func() error {
			var genErr error
			count, genErr = uc.GenerateForMonth(ctx, now, workerActor)
			return genErr
		})
		if err != nil {
			logger.ErrorCtx(ctx, "recurrence generation failed", "error", err)
			return
		}
		logger.InfoCtx(ctx, "recurrence generation complete", "transactions_created", count)
	}

	generate(time.Now().UTC())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			generate(now.UTC())
		}
	}
}

// runSweeper deletes expired operation log entries so the dedup table does
// not grow without bound.
func runSweeper(ctx context.Context, logger *logging.Logger, repo *postgresRepo.OperationLogRepository, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(ctx)
			if err != nil {
				logger.ErrorCtx(ctx, "operation log sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				logger.InfoCtx(ctx, "operation log sweep complete", "deleted", deleted)
			}
		}
	}
}
