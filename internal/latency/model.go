package latency

import (
	"math"
	"time"

	"github.com/google/uuid"

	"exchange-latency/internal/geo"
	"exchange-latency/internal/models"
)

const (
	msPer1000Km      = 10.0
	penaltyBaseMs    = 5.0
	penaltySpreadMs  = 10.0
	jitterProportion = 0.2
	minLatencyMs     = 1
)

// Model simulates latency between endpoints
type Model struct {
	rand RandomSource
	now  func() time.Time
}

// Option configures a Model
type Option func(*Model)

// WithRandom replaces the random source, mostly for tests
func WithRandom(r RandomSource) Option {
	return func(m *Model) {
		m.rand = r
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new Model
func New(opts ...Option) *Model {
	m := &Model{
		rand: DefaultSource(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Simulate returns one noisy latency in whole milliseconds for the pair.
// The result is never below 1.
func (m *Model) Simulate(from, to models.Endpoint) int {
	distance := geo.DistanceBetween(from.Coordinates, to.Coordinates)

	latency := distance / 1000 * msPer1000Km

	// Different providers peer worse than a single backbone
	if from.Provider != to.Provider {
		latency += penaltyBaseMs + m.rand.Float64()*penaltySpreadMs
	}

	// Jitter is taken from the post-penalty value
	jitter := latency * jitterProportion * (m.rand.Float64() - 0.5)

	return max(minLatencyMs, int(roundHalfUp(latency+jitter)))
}

// GeneratePairwise produces one sample per unordered pair (i<j in input
// order). All samples share a single timestamp taken before generation.
func (m *Model) GeneratePairwise(endpoints []models.Endpoint) models.LatencyBatch {
	now := m.now().UnixMilli()

	n := len(endpoints)
	size := 0
	if n > 1 {
		size = n * (n - 1) / 2
	}

	batch := models.LatencyBatch{
		ID:          uuid.NewString(),
		GeneratedAt: now,
		Samples:     make([]models.LatencySample, 0, size),
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			from, to := endpoints[i], endpoints[j]
			batch.Samples = append(batch.Samples, models.LatencySample{
				FromID:    from.ID,
				ToID:      to.ID,
				Latency:   m.Simulate(from, to),
				Timestamp: now,
			})
		}
	}

	return batch
}

// GenerateHistorical builds a synthetic series for the pair covering the
// range and ending at now, oldest point first. Unknown ranges yield an
// empty series.
func (m *Model) GenerateHistorical(from, to models.Endpoint, r models.TimeRange) []models.HistoricalPoint {
	duration, interval, ok := r.Window()
	if !ok {
		return []models.HistoricalPoint{}
	}

	now := m.now().UnixMilli()
	durationMs := duration.Milliseconds()
	intervalMs := interval.Milliseconds()

	series := make([]models.HistoricalPoint, 0, durationMs/intervalMs+1)
	baseline := float64(m.Simulate(from, to))

	for i := durationMs; i >= 0; i -= intervalMs {
		variation := math.Sin(float64(i)/float64(intervalMs))*15 + m.rand.Float64()*10
		latency := math.Max(minLatencyMs, baseline+variation)

		lo := latency - m.rand.Float64()*5
		hi := latency + m.rand.Float64()*15
		avg := (lo + hi) / 2

		series = append(series, models.HistoricalPoint{
			Timestamp: now - i,
			Latency:   int(roundHalfUp(latency)),
			Min:       int(roundHalfUp(lo)),
			Max:       int(roundHalfUp(hi)),
			Avg:       int(roundHalfUp(avg)),
		})
	}

	return series
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
