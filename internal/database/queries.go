package database

import (
	"fmt"
	"time"

	"github.com/guregu/null/v5"
	"github.com/montanaflynn/stats"

	"exchange-latency/internal/models"
)

// SaveBatch saves every sample of a batch in one transaction
func (db *DB) SaveBatch(batch models.LatencyBatch) error {
	if len(batch.Samples) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
        INSERT INTO latency_samples (batch_id, timestamp, from_id, to_id, latency_ms)
        VALUES (?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}
	defer stmt.Close()

	for _, s := range batch.Samples {
		if _, err := stmt.Exec(batch.ID, s.Timestamp, s.FromID, s.ToID, s.Latency); err != nil {
			return fmt.Errorf("insert %s->%s failed: %w", s.FromID, s.ToID, err)
		}
	}

	return tx.Commit()
}

// GetRecent retrieves recent latency samples, newest first
func (db *DB) GetRecent(hours int) ([]models.LatencySample, error) {
	query := `
        SELECT timestamp, from_id, to_id, latency_ms
        FROM latency_samples
        WHERE timestamp > ?
        ORDER BY timestamp DESC, id
        LIMIT 10000
    `

	rows, err := db.Query(query, db.sinceHours(hours))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.LatencySample{}
	for rows.Next() {
		var s models.LatencySample
		if err := rows.Scan(&s.Timestamp, &s.FromID, &s.ToID, &s.Latency); err != nil {
			continue
		}
		results = append(results, s)
	}

	return results, rows.Err()
}

// GetPairHistory retrieves samples for one pair in either direction, oldest first
func (db *DB) GetPairHistory(fromID, toID string, hours int) ([]models.LatencySample, error) {
	query := `
        SELECT timestamp, from_id, to_id, latency_ms
        FROM latency_samples
        WHERE ((from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?))
        AND timestamp > ?
        ORDER BY timestamp, id
    `

	rows, err := db.Query(query, fromID, toID, toID, fromID, db.sinceHours(hours))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.LatencySample{}
	for rows.Next() {
		var s models.LatencySample
		if err := rows.Scan(&s.Timestamp, &s.FromID, &s.ToID, &s.Latency); err != nil {
			continue
		}
		results = append(results, s)
	}

	return results, rows.Err()
}

// GetPairStats retrieves aggregated statistics per endpoint pair
func (db *DB) GetPairStats(hours int) ([]models.PairStats, error) {
	cutoff := db.sinceHours(hours)

	query := `
        SELECT
            from_id,
            to_id,
            COUNT(*) as samples,
            AVG(latency_ms) as avg_ms,
            MIN(latency_ms) as min_ms,
            MAX(latency_ms) as max_ms,
            MAX(timestamp) as last_seen
        FROM latency_samples
        WHERE timestamp > ?
        GROUP BY from_id, to_id
        ORDER BY from_id, to_id
    `

	rows, err := db.Query(query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.PairStats{}
	index := make(map[[2]string]int)
	for rows.Next() {
		var s models.PairStats
		var avg null.Float
		var lo, hi, last null.Int
		if err := rows.Scan(&s.FromID, &s.ToID, &s.Samples, &avg, &lo, &hi, &last); err != nil {
			continue
		}
		s.AvgMs, s.MinMs, s.MaxMs, s.LastSeen = avg, lo, hi, last
		index[[2]string{s.FromID, s.ToID}] = len(result)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.fillPercentiles(cutoff, result, index); err != nil {
		return nil, err
	}

	return result, nil
}

// fillPercentiles computes p95 per pair, which SQLite cannot aggregate
func (db *DB) fillPercentiles(cutoff int64, result []models.PairStats, index map[[2]string]int) error {
	rows, err := db.Query(`
        SELECT from_id, to_id, latency_ms
        FROM latency_samples
        WHERE timestamp > ?
    `, cutoff)
	if err != nil {
		return err
	}
	defer rows.Close()

	values := make(map[[2]string]stats.Float64Data, len(index))
	for rows.Next() {
		var from, to string
		var ms int
		if err := rows.Scan(&from, &to, &ms); err != nil {
			continue
		}
		key := [2]string{from, to}
		values[key] = append(values[key], float64(ms))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for key, data := range values {
		i, ok := index[key]
		if !ok {
			continue
		}
		p95, err := data.Percentile(95)
		if err != nil {
			continue
		}
		result[i].P95Ms = p95
	}
	return nil
}

// GetHourlyStats retrieves maintenance aggregates for the last days
func (db *DB) GetHourlyStats(days int) ([]models.HourlyPairStats, error) {
	query := `
        SELECT hour, from_id, to_id, samples, avg_ms, min_ms, max_ms
        FROM hourly_pair_stats
        WHERE hour > ?
        ORDER BY hour, from_id, to_id
    `

	rows, err := db.Query(query, db.sinceHours(min(days, MaxLookbackHours/24)*24))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.HourlyPairStats{}
	for rows.Next() {
		var h models.HourlyPairStats
		var hour int64
		var avg null.Float
		var lo, hi null.Int
		if err := rows.Scan(&hour, &h.FromID, &h.ToID, &h.Samples, &avg, &lo, &hi); err != nil {
			continue
		}
		h.Hour = time.UnixMilli(hour).UTC()
		h.AvgMs = avg.Float64
		h.MinMs = int(lo.Int64)
		h.MaxMs = int(hi.Int64)
		result = append(result, h)
	}

	return result, rows.Err()
}
