package monitor

import (
	"context"
	"log/slog"
	"sync"

	"exchange-latency/internal/config"
	"exchange-latency/internal/models"
)

var _ models.Monitor = (*Monitor)(nil)

// Monitor coordinates the live latency refresh and storage maintenance
type Monitor struct {
	config    config.Config
	db        models.Database
	refresher models.Refresher
	results   chan models.LatencyBatch
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a new Monitor
func New(cfg config.Config, db models.Database, refresher models.Refresher) *Monitor {
	return &Monitor{
		config:    cfg,
		db:        db,
		refresher: refresher,
		results:   make(chan models.LatencyBatch, 16),
	}
}

// Start begins the refresh process. Workers stop when ctx is done or
// Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	slog.Info("starting monitor", slog.Duration("interval", m.config.RefreshInterval))

	// Start batch persister
	m.wg.Add(1)
	go m.processResults()

	m.wg.Add(1)
	go m.refreshWorker()

	// Start maintenance routines
	m.wg.Add(1)
	go m.maintenanceWorker()

	return nil
}

// Stop gracefully stops the monitor
func (m *Monitor) Stop() {
	slog.Info("stopping monitor")
	if m.cancel != nil {
		m.cancel()
	}
}

// Wait blocks until all goroutines finish
func (m *Monitor) Wait() {
	m.wg.Wait()
	slog.Info("monitor stopped")
}
