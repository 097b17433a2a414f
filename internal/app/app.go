// Package app wires configuration, storage, services, the detection job and
// the HTTP server into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	postgres "github.com/hawlguard/zakat-backend/internal/adapter/postgres"
	assetrepo "github.com/hawlguard/zakat-backend/internal/adapter/postgres/asset"
	auditrepo "github.com/hawlguard/zakat-backend/internal/adapter/postgres/audit"
	"github.com/hawlguard/zakat-backend/internal/adapter/postgres/pricecache"
	recordrepo "github.com/hawlguard/zakat-backend/internal/adapter/postgres/record"
	"github.com/hawlguard/zakat-backend/internal/adapter/provider/metalprice"
	"github.com/hawlguard/zakat-backend/internal/config"
	"github.com/hawlguard/zakat-backend/internal/cryptobox"
	"github.com/hawlguard/zakat-backend/internal/job/detection"
	"github.com/hawlguard/zakat-backend/internal/service/hawl"
	"github.com/hawlguard/zakat-backend/internal/service/oracle"
	recordsvc "github.com/hawlguard/zakat-backend/internal/service/record"
	"github.com/hawlguard/zakat-backend/internal/service/wealth"
	"github.com/hawlguard/zakat-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, builds the
// dependency graph, starts the detection scheduler and the HTTP server, and
// blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	key, err := cfg.Crypto.Key()
	if err != nil {
		return err
	}
	box, err := cryptobox.New(key)
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	records := recordrepo.New(pool)
	ledger := auditrepo.New(pool)
	prices := pricecache.New(pool)
	assets := assetrepo.New(pool)

	feed := metalprice.NewProvider(cfg.PriceFeed.BaseURL, cfg.PriceFeed.APIKey, cfg.PriceFeed.FetchTimeout, logger)

	oracleSvc := oracle.NewService(logger, prices, feed, cfg.PriceFeed.FetchTimeout)
	wealthSvc := wealth.NewService(logger, assets, box, cfg.Zakat.Currency)
	recordSvc := recordsvc.NewService(logger, records, ledger, txManager, wealthSvc, oracleSvc, box,
		cfg.Zakat.Currency, cfg.Zakat.Basis())
	tracker := hawl.NewService(logger, recordSvc, wealthSvc, oracleSvc,
		cfg.Zakat.Currency, cfg.Zakat.Basis())

	job := detection.New(logger, assets, tracker,
		cfg.Detection.Interval, cfg.Detection.RunTimeout, cfg.Detection.Concurrency)

	router := rest.NewRouter(rest.Handlers{
		Records:   rest.NewRecordsHandler(recordSvc, logger),
		Threshold: rest.NewThresholdHandler(oracleSvc, logger, cfg.Zakat.Currency, cfg.Zakat.Basis()),
		Admin:     rest.NewAdminHandler(job, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
	}, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.Detection.Enabled {
		job.Start(ctx)
		defer job.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("http server started", slog.String("addr", srv.Addr))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
