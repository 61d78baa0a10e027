package database

import (
	"time"
)

const (
	hourMs              = 3600000
	aggregateWindow     = 48 * time.Hour
	hourlyRetentionDays = 90
)

// AggregateHourly rolls recent samples into hourly per-pair statistics
func (db *DB) AggregateHourly() error {
	query := `
        INSERT OR REPLACE INTO hourly_pair_stats (hour, from_id, to_id, samples, avg_ms, min_ms, max_ms)
        SELECT
            (timestamp / ?) * ? as hour,
            from_id,
            to_id,
            COUNT(*) as samples,
            AVG(latency_ms) as avg_ms,
            MIN(latency_ms) as min_ms,
            MAX(latency_ms) as max_ms
        FROM latency_samples
        WHERE timestamp > ?
        GROUP BY hour, from_id, to_id
    `
	_, err := db.Exec(query, hourMs, hourMs, db.since(aggregateWindow))
	return err
}

// ArchiveOldData keeps hourly aggregates of expiring samples and deletes them
func (db *DB) ArchiveOldData(retentionDays int) error {
	cutoff := db.since(time.Duration(retentionDays) * 24 * time.Hour)

	// Capture hourly stats for data about to be removed
	archiveQuery := `
        INSERT OR IGNORE INTO hourly_pair_stats (hour, from_id, to_id, samples, avg_ms, min_ms, max_ms)
        SELECT
            (timestamp / ?) * ? as hour,
            from_id,
            to_id,
            COUNT(*),
            AVG(latency_ms),
            MIN(latency_ms),
            MAX(latency_ms)
        FROM latency_samples
        WHERE timestamp < ?
        GROUP BY hour, from_id, to_id
    `
	if _, err := db.Exec(archiveQuery, hourMs, hourMs, cutoff); err != nil {
		return err
	}

	if _, err := db.Exec(`DELETE FROM latency_samples WHERE timestamp < ?`, cutoff); err != nil {
		return err
	}

	hourlyCutoff := db.since(hourlyRetentionDays * 24 * time.Hour)
	if _, err := db.Exec(`DELETE FROM hourly_pair_stats WHERE hour < ?`, hourlyCutoff); err != nil {
		return err
	}

	// Vacuum to reclaim space (run occasionally)
	if db.now().Day() == 1 {
		_, err := db.Exec("VACUUM")
		return err
	}

	return nil
}
