package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"exchange-latency/internal/catalog"
	"exchange-latency/internal/config"
	"exchange-latency/internal/database"
	"exchange-latency/internal/latency"
	"exchange-latency/internal/models"
	"exchange-latency/internal/monitor"
	"exchange-latency/internal/report"
	"exchange-latency/internal/state"
	"exchange-latency/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize schema
	if err := db.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	model := latency.New()

	if cfg.ReportDir != "" {
		return runReport(cfg, db, model, cat)
	}

	// Initialize components
	store := state.New(cat, model, cfg.VisibleConnections)
	mon := monitor.New(cfg, db, store)
	webServer := web.New(web.Options{
		Store:          store,
		Catalog:        cat,
		Model:          model,
		Database:       db,
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Handle shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mon.Start(ctx); err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(webServer.Start)
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return webServer.Stop(shutdownCtx)
	})

	slog.Info("service started",
		slog.Int("endpoints", len(cat.Endpoints())),
		slog.Int("regions", len(cat.Regions())),
		slog.Duration("interval", cfg.RefreshInterval))
	slog.Info("web interface available", slog.String("url", fmt.Sprintf("http://localhost:%d", cfg.Port)))

	err = g.Wait()
	mon.Stop()
	mon.Wait()
	return err
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	slog.Info("catalog loaded", slog.String("path", path))
	return cat, nil
}

func runReport(cfg config.Config, db *database.DB, model *latency.Model, cat *catalog.Catalog) error {
	r, err := models.ParseTimeRange(cfg.ReportRange)
	if err != nil {
		return err
	}

	generator := report.NewGenerator(db, model, cat)
	dir, err := generator.GenerateReport(cfg.ReportDir, cfg.ReportFrom, cfg.ReportTo, r)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	slog.Info("report generated", slog.String("dir", dir))
	return nil
}
