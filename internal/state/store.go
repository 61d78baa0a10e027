// Package state holds the shared filter, selection and live-data state
// that the HTTP API exposes to renderers. Every change goes through an
// explicit transition method; derived views are recomputed on read.
package state

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"exchange-latency/internal/catalog"
	"exchange-latency/internal/latency"
	"exchange-latency/internal/models"
)

var (
	// ErrUnknownEndpoint is returned for ids not present in the catalog
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	// ErrInvalidFilter is returned for filter values outside their domain
	ErrInvalidFilter = errors.New("invalid filter")
)

const (
	DefaultVisibleConnections = 20
	DefaultMaxLatency         = 500
)

// Filters are the user-controlled view filters
type Filters struct {
	Exchanges    []string          `json:"exchanges"`
	Providers    []models.Provider `json:"providers"`
	LatencyRange [2]int            `json:"latencyRange"`
	TimeRange    models.TimeRange  `json:"timeRange"`
	SearchQuery  string            `json:"searchQuery"`
}

// Display holds layer toggles and theme
type Display struct {
	ShowRealtime   bool `json:"showRealtime"`
	ShowHistorical bool `json:"showHistorical"`
	ShowRegions    bool `json:"showRegions"`
	DarkMode       bool `json:"isDarkMode"`
}

// Selection is the connection chosen for historical charts
type Selection struct {
	From models.Endpoint `json:"from"`
	To   models.Endpoint `json:"to"`
}

// Store is safe for concurrent use
type Store struct {
	mu sync.RWMutex

	catalog      *catalog.Catalog
	model        *latency.Model
	visibleLimit int

	batch         models.LatencyBatch
	selection     *Selection
	historical    []models.HistoricalPoint
	filters       Filters
	display       Display
	firstSelected string
}

// New creates a store with the default filters
func New(cat *catalog.Catalog, model *latency.Model, visibleLimit int) *Store {
	if visibleLimit <= 0 {
		visibleLimit = DefaultVisibleConnections
	}
	return &Store{
		catalog:      cat,
		model:        model,
		visibleLimit: visibleLimit,
		batch:        models.LatencyBatch{Samples: []models.LatencySample{}},
		historical:   []models.HistoricalPoint{},
		filters: Filters{
			Exchanges:    []string{},
			Providers:    models.Providers(),
			LatencyRange: [2]int{0, DefaultMaxLatency},
			TimeRange:    models.TimeRange24h,
		},
		display: Display{
			ShowRealtime: true,
			ShowRegions:  true,
		},
	}
}

// SetSelectedExchanges restricts visible endpoints to the given exchange names.
// An empty list shows every exchange.
func (s *Store) SetSelectedExchanges(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Exchanges = append([]string{}, names...)
}

// SetSelectedProviders restricts visible endpoints to the given providers
func (s *Store) SetSelectedProviders(providers []models.Provider) error {
	for _, p := range providers {
		if !p.Valid() {
			return fmt.Errorf("%w: provider %q", ErrInvalidFilter, p)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Providers = append([]models.Provider{}, providers...)
	return nil
}

// SetLatencyRange bounds the live connections shown, inclusive
func (s *Store) SetLatencyRange(lo, hi int) error {
	if lo < 0 || hi < lo {
		return fmt.Errorf("%w: latency range [%d, %d]", ErrInvalidFilter, lo, hi)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.LatencyRange = [2]int{lo, hi}
	return nil
}

// SetTimeRange changes the historical window and regenerates the series
// for the current selection
func (s *Store) SetTimeRange(r models.TimeRange) error {
	if _, _, ok := r.Window(); !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownTimeRange, r)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.TimeRange = r
	s.regenerateHistorical()
	return nil
}

func (s *Store) SetShowRealtime(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display.ShowRealtime = show
}

func (s *Store) SetShowHistorical(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display.ShowHistorical = show
}

func (s *Store) SetShowRegions(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display.ShowRegions = show
}

func (s *Store) SetDarkMode(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display.DarkMode = dark
}

func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.SearchQuery = query
}

// SelectConnection selects a pair and regenerates its historical series
func (s *Store) SelectConnection(fromID, toID string) error {
	from, ok := s.catalog.Endpoint(fromID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEndpoint, fromID)
	}
	to, ok := s.catalog.Endpoint(toID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEndpoint, toID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = &Selection{From: from, To: to}
	s.regenerateHistorical()
	return nil
}

// ClearSelection drops the selected pair and its series
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
	s.historical = []models.HistoricalPoint{}
}

// UpdateLatency replaces the live batch with a fresh snapshot over every
// endpoint. A batch generated before the one already held is returned but
// not installed.
func (s *Store) UpdateLatency() models.LatencyBatch {
	batch := s.model.GeneratePairwise(s.catalog.Endpoints())

	s.mu.Lock()
	defer s.mu.Unlock()
	if batch.GeneratedAt >= s.batch.GeneratedAt {
		s.batch = batch
	}
	return batch
}

// regenerateHistorical must be called with the write lock held
func (s *Store) regenerateHistorical() {
	if s.selection == nil {
		return
	}
	s.historical = s.model.GenerateHistorical(s.selection.From, s.selection.To, s.filters.TimeRange)
}

// ClickResult reports what a marker click did
type ClickResult string

const (
	ClickPending  ClickResult = "pending"
	ClickCleared  ClickResult = "cleared"
	ClickSelected ClickResult = "selected"
)

// ClickMarker implements two-click pair selection. The first click remembers
// the endpoint, clicking it again cancels and clears the selection, and a
// click on a different endpoint selects the pair and shows its history.
func (s *Store) ClickMarker(id string) (ClickResult, error) {
	endpoint, ok := s.catalog.Endpoint(id)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEndpoint, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.firstSelected {
	case "":
		s.firstSelected = id
		return ClickPending, nil
	case id:
		s.firstSelected = ""
		s.selection = nil
		s.historical = []models.HistoricalPoint{}
		return ClickCleared, nil
	}

	from, _ := s.catalog.Endpoint(s.firstSelected)
	s.selection = &Selection{From: from, To: endpoint}
	s.regenerateHistorical()
	s.display.ShowHistorical = true
	s.firstSelected = ""
	return ClickSelected, nil
}

// FilteredEndpoints applies the provider, exchange-name and search filters
func (s *Store) FilteredEndpoints() []models.Endpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filteredEndpoints()
}

func (s *Store) filteredEndpoints() []models.Endpoint {
	query := strings.ToLower(s.filters.SearchQuery)

	out := []models.Endpoint{}
	for _, e := range s.catalog.Endpoints() {
		if !slices.Contains(s.filters.Providers, e.Provider) {
			continue
		}
		if len(s.filters.Exchanges) > 0 && !slices.Contains(s.filters.Exchanges, e.Name) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Name), query) &&
			!strings.Contains(strings.ToLower(e.Location), query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// VisibleConnections returns the live connections inside the latency range,
// capped at the configured limit
func (s *Store) VisibleConnections() []models.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connections(s.filters.LatencyRange[0], s.filters.LatencyRange[1], s.visibleLimit)
}

// VisibleLimit is the configured cap on visible connections
func (s *Store) VisibleLimit() int {
	return s.visibleLimit
}

// Connections is VisibleConnections with caller-supplied bounds
func (s *Store) Connections(lo, hi, limit int) []models.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connections(lo, hi, limit)
}

func (s *Store) connections(lo, hi, limit int) []models.Connection {
	samples := latency.FilterByRange(s.batch.Samples, lo, hi)

	out := []models.Connection{}
	for _, sample := range samples {
		if limit > 0 && len(out) >= limit {
			break
		}
		from, ok := s.catalog.Endpoint(sample.FromID)
		if !ok {
			continue
		}
		to, ok := s.catalog.Endpoint(sample.ToID)
		if !ok {
			continue
		}
		out = append(out, models.Connection{
			From:     from,
			To:       to,
			Latency:  sample.Latency,
			Severity: latency.Classify(sample.Latency),
			Color:    latency.Color(sample.Latency),
		})
	}
	return out
}

// Batch returns the current live batch
func (s *Store) Batch() models.LatencyBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.batch
	b.Samples = slices.Clone(s.batch.Samples)
	return b
}

// AverageLatency is the rounded mean of the live batch, 0 when empty
func (s *Store) AverageLatency() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return latency.AverageLatency(s.batch.Samples)
}

// Historical returns the series for the current selection
func (s *Store) Historical() []models.HistoricalPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.historical)
}

// HistoricalStats summarises the current series
func (s *Store) HistoricalStats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return latency.Summarize(s.historical)
}

// Summary returns the stats panel figures
func (s *Store) Summary() models.BatchSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.BatchSummary{
		BatchID:     s.batch.ID,
		GeneratedAt: s.batch.GeneratedAt,
		Samples:     len(s.batch.Samples),
		AvgLatency:  latency.AverageLatency(s.batch.Samples),
		Endpoints:   len(s.catalog.Endpoints()),
		Visible:     len(s.filteredEndpoints()),
		Connections: len(s.connections(s.filters.LatencyRange[0], s.filters.LatencyRange[1], s.visibleLimit)),
	}
}

// Snapshot is a serialisable copy of the store
type Snapshot struct {
	Filters       Filters                  `json:"filters"`
	Display       Display                  `json:"display"`
	Selection     *Selection               `json:"selectedConnection"`
	FirstSelected string                   `json:"firstSelected,omitempty"`
	Historical    []models.HistoricalPoint `json:"historicalData"`
	Stats         models.Stats             `json:"historicalStats"`
	Summary       models.BatchSummary      `json:"summary"`
}

// Snapshot copies the current state
func (s *Store) Snapshot() Snapshot {
	summary := s.Summary()

	s.mu.RLock()
	defer s.mu.RUnlock()

	f := s.filters
	f.Exchanges = slices.Clone(s.filters.Exchanges)
	f.Providers = slices.Clone(s.filters.Providers)

	var sel *Selection
	if s.selection != nil {
		c := *s.selection
		sel = &c
	}

	return Snapshot{
		Filters:       f,
		Display:       s.display,
		Selection:     sel,
		FirstSelected: s.firstSelected,
		Historical:    slices.Clone(s.historical),
		Stats:         latency.Summarize(s.historical),
		Summary:       summary,
	}
}

// Filters returns a copy of the current filters
func (s *Store) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.filters
	f.Exchanges = slices.Clone(s.filters.Exchanges)
	f.Providers = slices.Clone(s.filters.Providers)
	return f
}
