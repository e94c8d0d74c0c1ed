package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"globalfund/internal/adapter/repo"
	"globalfund/internal/engine"
	"globalfund/internal/infra"
)

// The sweeper is the periodic trigger for campaign settlement: it invokes the
// expiry scan on a fixed interval. Running more than one sweeper is safe; the
// per-campaign transactions and row locks keep them from double-settling.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "sweeper")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("sweeper: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	refunds := engine.NewRefundEngine(repo.NewUnitOfWork(runner), logger)

	logger.Info().Dur("interval", cfg.ScanInterval).Msg("sweeper: started")
	runScan(ctx, refunds, logger)

	ticker := time.NewTicker(cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("sweeper: stopped")
			return
		case <-ticker.C:
			runScan(ctx, refunds, logger)
		}
	}
}

func runScan(ctx context.Context, refunds *engine.RefundEngine, logger infra.Logger) {
	report, err := refunds.Scan(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error().Err(err).Msg("sweeper: scan failed")
		return
	}
	logger.Info().
		Int("scanned", report.Scanned).
		Int("successful", report.Successful).
		Int("failed", report.Failed).
		Int("refunded_pledges", report.Refunded).
		Int("errors", report.Errors).
		Msg("sweeper: scan complete")
}
