package monitor

import (
	"log/slog"
	"time"
)

// refreshWorker regenerates the live snapshot at the configured interval
func (m *Monitor) refreshWorker() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.RefreshInterval)
	defer ticker.Stop()

	// Immediate first refresh
	m.performRefresh()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.performRefresh()
		}
	}
}

// performRefresh replaces the live batch and queues it for storage
func (m *Monitor) performRefresh() {
	batch := m.refresher.UpdateLatency()
	slog.Debug("latency refreshed",
		slog.String("batch_id", batch.ID),
		slog.Int("samples", len(batch.Samples)))

	select {
	case m.results <- batch:
	default:
		slog.Warn("result channel full, dropping batch", slog.String("batch_id", batch.ID))
	}
}

// processResults persists batches from the results channel
func (m *Monitor) processResults() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case batch := <-m.results:
			if err := m.db.SaveBatch(batch); err != nil {
				slog.Error("failed to save batch",
					slog.String("batch_id", batch.ID),
					slog.String("error", err.Error()))
			}
		}
	}
}
