package models

import (
	"time"

	"github.com/guregu/null/v5"
)

// Stats summarises the latency field of a historical series
type Stats struct {
	Min int `json:"min"`
	Max int `json:"max"`
	Avg int `json:"avg"`
}

// PairStats represents persisted statistics for one endpoint pair
type PairStats struct {
	FromID   string     `json:"fromId"`
	ToID     string     `json:"toId"`
	Samples  int        `json:"samples"`
	AvgMs    null.Float `json:"avgMs"`
	MinMs    null.Int   `json:"minMs"`
	MaxMs    null.Int   `json:"maxMs"`
	P95Ms    float64    `json:"p95Ms"`
	LastSeen null.Int   `json:"lastSeen"` // epoch milliseconds
}

// HourlyPairStats is a maintenance aggregate for one pair and hour
type HourlyPairStats struct {
	Hour    time.Time `json:"hour"`
	FromID  string    `json:"fromId"`
	ToID    string    `json:"toId"`
	Samples int       `json:"samples"`
	AvgMs   float64   `json:"avgMs"`
	MinMs   int       `json:"minMs"`
	MaxMs   int       `json:"maxMs"`
}

// BatchSummary describes the live snapshot for the stats panel
type BatchSummary struct {
	BatchID     string `json:"batchId"`
	GeneratedAt int64  `json:"generatedAt"`
	Samples     int    `json:"samples"`
	AvgLatency  int    `json:"avgLatency"`
	Endpoints   int    `json:"endpoints"`
	Visible     int    `json:"visibleEndpoints"`
	Connections int    `json:"visibleConnections"`
}
