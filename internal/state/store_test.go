package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"exchange-latency/internal/catalog"
	"exchange-latency/internal/latency"
	"exchange-latency/internal/models"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *Store {
	t.Helper()
	model := latency.New(latency.WithClock(func() time.Time { return now }))
	return New(catalog.Default(), model, 0)
}

func TestDefaults(t *testing.T) {
	s := newStore(t)
	snap := s.Snapshot()

	if snap.Filters.TimeRange != models.TimeRange24h {
		t.Errorf("TimeRange = %s, want 24h", snap.Filters.TimeRange)
	}
	if snap.Filters.LatencyRange != [2]int{0, 500} {
		t.Errorf("LatencyRange = %v", snap.Filters.LatencyRange)
	}
	if len(snap.Filters.Providers) != 3 {
		t.Errorf("Providers = %v", snap.Filters.Providers)
	}
	if !snap.Display.ShowRealtime || snap.Display.ShowHistorical || !snap.Display.ShowRegions || snap.Display.DarkMode {
		t.Errorf("unexpected display defaults %+v", snap.Display)
	}
	if snap.Selection != nil {
		t.Errorf("expected no selection")
	}
	if len(snap.Historical) != 0 || snap.Stats != (models.Stats{}) {
		t.Errorf("expected empty historical data")
	}
	if s.AverageLatency() != 0 {
		t.Errorf("expected zero average before first update")
	}
}

func TestUpdateLatency(t *testing.T) {
	s := newStore(t)

	first := s.UpdateLatency()
	if len(first.Samples) != 16*15/2 {
		t.Fatalf("got %d samples, want %d", len(first.Samples), 16*15/2)
	}

	second := s.UpdateLatency()
	if s.Batch().ID != second.ID || first.ID == second.ID {
		t.Errorf("store should hold the newest batch only")
	}
	if s.AverageLatency() < 1 {
		t.Errorf("average latency = %d", s.AverageLatency())
	}

	summary := s.Summary()
	if summary.Samples != 120 || summary.Endpoints != 16 || summary.BatchID != second.ID {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestUpdateLatencyKeepsNewestBatch(t *testing.T) {
	clock := now
	model := latency.New(latency.WithClock(func() time.Time { return clock }))
	s := New(catalog.Default(), model, 0)

	newer := s.UpdateLatency()

	// a batch generated earlier that finishes after the newer one
	clock = now.Add(-time.Second)
	older := s.UpdateLatency()

	if older.ID == "" || older.GeneratedAt >= newer.GeneratedAt {
		t.Fatalf("unexpected batches %q@%d and %q@%d", newer.ID, newer.GeneratedAt, older.ID, older.GeneratedAt)
	}
	if got := s.Batch().ID; got != newer.ID {
		t.Errorf("store holds %q, want newer batch %q", got, newer.ID)
	}

	clock = now.Add(time.Second)
	latest := s.UpdateLatency()
	if got := s.Batch().ID; got != latest.ID {
		t.Errorf("store holds %q, want latest batch %q", got, latest.ID)
	}
}

func TestFilteredEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		providers []models.Provider
		exchanges []string
		query     string
		expected  int
	}{
		{name: "all", providers: models.Providers(), expected: 16},
		{name: "azure only", providers: []models.Provider{models.ProviderAzure}, expected: 2},
		{name: "no providers", providers: []models.Provider{}, expected: 0},
		{name: "binance", providers: models.Providers(), exchanges: []string{"Binance"}, expected: 3},
		{name: "search location", providers: models.Providers(), query: "singapore", expected: 5},
		{name: "search name case insensitive", providers: models.Providers(), query: "KRAK", expected: 2},
		{name: "combined", providers: []models.Provider{models.ProviderGCP}, query: "singapore", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if err := s.SetSelectedProviders(tt.providers); err != nil {
				t.Fatal(err)
			}
			s.SetSelectedExchanges(tt.exchanges)
			s.SetSearchQuery(tt.query)

			if got := len(s.FilteredEndpoints()); got != tt.expected {
				t.Errorf("got %d endpoints, want %d", got, tt.expected)
			}
		})
	}
}

func TestFilterValidation(t *testing.T) {
	s := newStore(t)

	if err := s.SetSelectedProviders([]models.Provider{"Oracle"}); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
	if err := s.SetLatencyRange(100, 50); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
	if err := s.SetLatencyRange(-1, 50); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
	if err := s.SetTimeRange("1y"); !errors.Is(err, models.ErrUnknownTimeRange) {
		t.Errorf("expected ErrUnknownTimeRange, got %v", err)
	}
}

func TestVisibleConnections(t *testing.T) {
	s := newStore(t)
	s.UpdateLatency()

	conns := s.VisibleConnections()
	if len(conns) != DefaultVisibleConnections {
		t.Fatalf("got %d connections, want %d", len(conns), DefaultVisibleConnections)
	}
	for _, c := range conns {
		if c.Color != latency.Color(c.Latency) || c.Severity != latency.Classify(c.Latency) {
			t.Errorf("connection %s->%s has inconsistent severity", c.From.ID, c.To.ID)
		}
	}

	if err := s.SetLatencyRange(0, 0); err != nil {
		t.Fatal(err)
	}
	if got := len(s.VisibleConnections()); got != 0 {
		t.Errorf("got %d connections below 1ms, want 0", got)
	}

	for _, c := range s.Connections(1, 1000, 0) {
		if c.Latency < 1 || c.Latency > 1000 {
			t.Errorf("connection latency %d outside bounds", c.Latency)
		}
	}
	if got := len(s.Connections(0, 100000, 0)); got != 120 {
		t.Errorf("unlimited connections = %d, want 120", got)
	}
}

func TestSelectConnection(t *testing.T) {
	s := newStore(t)

	if err := s.SelectConnection("binance-tokyo", "nope"); !errors.Is(err, ErrUnknownEndpoint) {
		t.Fatalf("expected ErrUnknownEndpoint, got %v", err)
	}

	if err := s.SelectConnection("binance-tokyo", "coinbase-virginia"); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Historical()); got != 97 {
		t.Errorf("24h series length = %d, want 97", got)
	}

	if err := s.SetTimeRange(models.TimeRange1h); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Historical()); got != 61 {
		t.Errorf("1h series length = %d, want 61", got)
	}
	stats := s.HistoricalStats()
	if stats.Min < 1 || stats.Max < stats.Min || stats.Avg < stats.Min || stats.Avg > stats.Max {
		t.Errorf("inconsistent stats %+v", stats)
	}

	s.ClearSelection()
	if len(s.Historical()) != 0 || s.Snapshot().Selection != nil {
		t.Errorf("selection should be cleared")
	}

	// Changing the range without a selection generates nothing
	if err := s.SetTimeRange(models.TimeRange7d); err != nil {
		t.Fatal(err)
	}
	if len(s.Historical()) != 0 {
		t.Errorf("expected no series without a selection")
	}
}

func TestClickMarker(t *testing.T) {
	s := newStore(t)

	steps := []struct {
		id       string
		expected ClickResult
	}{
		{"binance-tokyo", ClickPending},
		{"binance-tokyo", ClickCleared},
		{"binance-tokyo", ClickPending},
		{"kraken-frankfurt", ClickSelected},
	}

	for i, step := range steps {
		got, err := s.ClickMarker(step.id)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got != step.expected {
			t.Fatalf("step %d: ClickMarker(%s) = %s, want %s", i, step.id, got, step.expected)
		}
	}

	snap := s.Snapshot()
	if snap.Selection == nil || snap.Selection.From.ID != "binance-tokyo" || snap.Selection.To.ID != "kraken-frankfurt" {
		t.Fatalf("unexpected selection %+v", snap.Selection)
	}
	if !snap.Display.ShowHistorical {
		t.Errorf("selecting a pair should show historical data")
	}
	if snap.FirstSelected != "" {
		t.Errorf("pending marker should be forgotten")
	}
	if len(snap.Historical) != 97 {
		t.Errorf("series length = %d, want 97", len(snap.Historical))
	}

	if _, err := s.ClickMarker("missing"); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("expected ErrUnknownEndpoint, got %v", err)
	}
}

func TestDisplayToggles(t *testing.T) {
	s := newStore(t)
	s.SetShowRealtime(false)
	s.SetShowHistorical(true)
	s.SetShowRegions(false)
	s.SetDarkMode(true)

	want := Display{ShowHistorical: true, DarkMode: true}
	if got := s.Snapshot().Display; got != want {
		t.Errorf("Display = %+v, want %+v", got, want)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				s.UpdateLatency()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = s.VisibleConnections()
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()
}
