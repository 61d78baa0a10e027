package monitor

import (
	"log/slog"
	"time"
)

// maintenanceWorker runs periodic maintenance tasks
func (m *Monitor) maintenanceWorker() {
	defer m.wg.Done()

	// Run maintenance every hour
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	// Run immediately on start
	m.performMaintenance()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.performMaintenance()
		}
	}
}

// performMaintenance runs maintenance tasks
func (m *Monitor) performMaintenance() {
	slog.Info("running maintenance tasks")

	// Aggregate hourly per-pair statistics
	if err := m.db.AggregateHourly(); err != nil {
		slog.Error("failed to aggregate hourly stats", slog.String("error", err.Error()))
	}

	// Archive raw samples past retention, hourly stats are kept for 90 days
	if err := m.db.ArchiveOldData(m.config.RetentionDays); err != nil {
		slog.Error("failed to archive old data", slog.String("error", err.Error()))
	}

	slog.Info("maintenance complete")
}
