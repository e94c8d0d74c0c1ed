package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"globalfund/internal/adapter/repo"
	"globalfund/internal/engine"
	"globalfund/internal/http/handlers"
	"globalfund/internal/http/httpapi"
	"globalfund/internal/infra"
	"globalfund/internal/infra/geoip"
	"globalfund/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	uow := repo.NewUnitOfWork(runner)
	pledges := engine.NewPledgeEngine(uow, logger, cfg.IdempotencyLease)

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip resolver unavailable")
	} else if resolver != nil {
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(uow, pledges, logger, cfg)
	router := httpapi.NewRouter(app, cfg, logger, lookup)
	server := infra.NewHTTPServer(cfg, router, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
