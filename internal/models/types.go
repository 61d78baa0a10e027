package models

import (
	"context"
)

// Database interface defines operations for data persistence
type Database interface {
	SaveBatch(batch LatencyBatch) error
	GetRecent(hours int) ([]LatencySample, error)
	GetPairStats(hours int) ([]PairStats, error)
	GetPairHistory(fromID, toID string, hours int) ([]LatencySample, error)
	GetHourlyStats(days int) ([]HourlyPairStats, error)
	AggregateHourly() error
	ArchiveOldData(retentionDays int) error
	Close() error
}

// Refresher produces a fresh latency snapshot on demand
type Refresher interface {
	UpdateLatency() LatencyBatch
}

// Monitor interface defines the refresh lifecycle
type Monitor interface {
	Start(ctx context.Context) error
	Stop()
	Wait()
}
