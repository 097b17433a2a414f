// Command detect runs one detection pass and exits: every user with
// zakat-eligible assets is evaluated against the Nisab threshold, exactly as
// the scheduled job would, and the run summary is printed to the log.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	postgres "github.com/hawlguard/zakat-backend/internal/adapter/postgres"
	assetrepo "github.com/hawlguard/zakat-backend/internal/adapter/postgres/asset"
	auditrepo "github.com/hawlguard/zakat-backend/internal/adapter/postgres/audit"
	"github.com/hawlguard/zakat-backend/internal/adapter/postgres/pricecache"
	recordrepo "github.com/hawlguard/zakat-backend/internal/adapter/postgres/record"
	"github.com/hawlguard/zakat-backend/internal/adapter/provider/metalprice"
	"github.com/hawlguard/zakat-backend/internal/app"
	"github.com/hawlguard/zakat-backend/internal/config"
	"github.com/hawlguard/zakat-backend/internal/cryptobox"
	"github.com/hawlguard/zakat-backend/internal/job/detection"
	"github.com/hawlguard/zakat-backend/internal/service/hawl"
	"github.com/hawlguard/zakat-backend/internal/service/oracle"
	recordsvc "github.com/hawlguard/zakat-backend/internal/service/record"
	"github.com/hawlguard/zakat-backend/internal/service/wealth"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	key, err := cfg.Crypto.Key()
	if err != nil {
		logger.Error("crypto key", slog.String("error", err.Error()))
		os.Exit(1)
	}
	box, err := cryptobox.New(key)
	if err != nil {
		logger.Error("crypto box", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	assets := assetrepo.New(pool)
	feed := metalprice.NewProvider(cfg.PriceFeed.BaseURL, cfg.PriceFeed.APIKey, cfg.PriceFeed.FetchTimeout, logger)

	oracleSvc := oracle.NewService(logger, pricecache.New(pool), feed, cfg.PriceFeed.FetchTimeout)
	wealthSvc := wealth.NewService(logger, assets, box, cfg.Zakat.Currency)
	recordSvc := recordsvc.NewService(logger, recordrepo.New(pool), auditrepo.New(pool), txManager,
		wealthSvc, oracleSvc, box, cfg.Zakat.Currency, cfg.Zakat.Basis())
	tracker := hawl.NewService(logger, recordSvc, wealthSvc, oracleSvc,
		cfg.Zakat.Currency, cfg.Zakat.Basis())

	job := detection.New(logger, assets, tracker,
		cfg.Detection.Interval, cfg.Detection.RunTimeout, cfg.Detection.Concurrency)

	summary, err := job.Trigger(ctx)
	if err != nil {
		logger.Error("detection run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("detection run complete",
		slog.Int("users", summary.Users),
		slog.Int("processed", summary.Processed),
		slog.Int("skipped", summary.Skipped),
	)
}
