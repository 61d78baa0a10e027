package latency

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"exchange-latency/internal/models"
)

const (
	mediumThresholdMs = 50
	highThresholdMs   = 150
)

// Summarize reduces a series to min/max/avg of its latency values.
// An empty series yields zero stats.
func Summarize(series []models.HistoricalPoint) models.Stats {
	if len(series) == 0 {
		return models.Stats{}
	}

	values := make(stats.Float64Data, 0, len(series))
	for _, p := range series {
		values = append(values, float64(p.Latency))
	}

	// Errors are only returned for empty input
	lo, _ := values.Min()
	hi, _ := values.Max()
	mean, _ := values.Mean()

	return models.Stats{
		Min: int(lo),
		Max: int(hi),
		Avg: int(roundHalfUp(mean)),
	}
}

// AverageLatency returns the rounded mean latency of a batch, or 0 if empty
func AverageLatency(samples []models.LatencySample) int {
	if len(samples) == 0 {
		return 0
	}
	sum := 0
	for _, s := range samples {
		sum += s.Latency
	}
	return int(roundHalfUp(float64(sum) / float64(len(samples))))
}

// Classify buckets a latency: <50 low, <150 medium, otherwise high
func Classify(latencyMs int) models.Severity {
	switch {
	case latencyMs < mediumThresholdMs:
		return models.SeverityLow
	case latencyMs < highThresholdMs:
		return models.SeverityMedium
	default:
		return models.SeverityHigh
	}
}

// Color returns the connection colour for a latency
func Color(latencyMs int) string {
	switch Classify(latencyMs) {
	case models.SeverityLow:
		return "#10B981"
	case models.SeverityMedium:
		return "#F59E0B"
	default:
		return "#EF4444"
	}
}

// FilterByRange keeps samples whose latency lies in [lo, hi]
func FilterByRange(samples []models.LatencySample, lo, hi int) []models.LatencySample {
	filtered := make([]models.LatencySample, 0, len(samples))
	for _, s := range samples {
		if s.Latency < lo || s.Latency > hi {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// Format renders a latency with its unit
func Format(latencyMs int) string {
	return strconv.Itoa(latencyMs) + "ms"
}
