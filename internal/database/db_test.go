package database

import (
	"math"
	"testing"
	"time"

	"exchange-latency/internal/models"
)

var now = time.Date(2024, 5, 15, 12, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	db.now = func() time.Time { return now }
	return db
}

func batchAt(id string, at time.Time, latencies ...int) models.LatencyBatch {
	pairs := [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	b := models.LatencyBatch{ID: id, GeneratedAt: at.UnixMilli()}
	for i, ms := range latencies {
		p := pairs[i%len(pairs)]
		b.Samples = append(b.Samples, models.LatencySample{
			FromID:    p[0],
			ToID:      p[1],
			Latency:   ms,
			Timestamp: at.UnixMilli(),
		})
	}
	return b
}

func TestSaveBatchAndGetRecent(t *testing.T) {
	db := newTestDB(t)

	if err := db.SaveBatch(batchAt("old", now.Add(-3*time.Hour), 10, 20, 30)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveBatch(batchAt("new", now.Add(-time.Minute), 11, 21, 31)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveBatch(models.LatencyBatch{ID: "empty"}); err != nil {
		t.Fatalf("empty batch should be a no-op: %v", err)
	}

	recent, err := db.GetRecent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d recent samples, want 3", len(recent))
	}
	if recent[0].Latency != 11 || recent[0].FromID != "a" || recent[0].ToID != "b" {
		t.Errorf("unexpected first sample %+v", recent[0])
	}

	all, err := db.GetRecent(24)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 6 {
		t.Errorf("got %d samples over 24h, want 6", len(all))
	}
	if all[0].Timestamp < all[len(all)-1].Timestamp {
		t.Errorf("expected newest first")
	}
}

func TestSaveBatchRejectsZeroLatency(t *testing.T) {
	db := newTestDB(t)

	if err := db.SaveBatch(batchAt("bad", now, 5, 0)); err == nil {
		t.Fatalf("expected constraint violation")
	}

	recent, err := db.GetRecent(24)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 0 {
		t.Errorf("failed batch should be rolled back, found %d samples", len(recent))
	}
}

func TestGetPairStats(t *testing.T) {
	db := newTestDB(t)

	for i, ms := range []int{10, 20, 30, 40} {
		b := batchAt("b", now.Add(-time.Duration(i+1)*time.Minute), ms)
		if err := db.SaveBatch(b); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.SaveBatch(batchAt("c", now.Add(-time.Minute), 1, 99)); err != nil {
		t.Fatal(err)
	}

	stats, err := db.GetPairStats(24)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d pairs, want 2", len(stats))
	}

	ab := stats[0]
	if ab.FromID != "a" || ab.ToID != "b" {
		t.Fatalf("unexpected order %+v", stats)
	}
	if ab.Samples != 5 || ab.MinMs.Int64 != 1 || ab.MaxMs.Int64 != 40 {
		t.Errorf("unexpected a->b stats %+v", ab)
	}
	if ab.AvgMs.Float64 != 20.2 {
		t.Errorf("avg = %v, want 20.2", ab.AvgMs.Float64)
	}
	// 95th percentile of 1,10,20,30,40 interpolates the top two
	if ab.P95Ms != 35 {
		t.Errorf("p95 = %v, want 35", ab.P95Ms)
	}
	if ab.LastSeen.Int64 != now.Add(-time.Minute).UnixMilli() {
		t.Errorf("lastSeen = %v", ab.LastSeen.Int64)
	}

	ac := stats[1]
	if ac.Samples != 1 || ac.MinMs.Int64 != 99 || ac.P95Ms != 99 {
		t.Errorf("unexpected a->c stats %+v", ac)
	}
}

func TestGetPairHistory(t *testing.T) {
	db := newTestDB(t)

	for i, ms := range []int{30, 20, 10} {
		b := batchAt("b", now.Add(-time.Duration(i+1)*time.Hour), ms, 77)
		if err := db.SaveBatch(b); err != nil {
			t.Fatal(err)
		}
	}

	history, err := db.GetPairHistory("a", "b", 24)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("got %d samples, want 3", len(history))
	}
	if history[0].Latency != 10 || history[2].Latency != 30 {
		t.Errorf("expected oldest first, got %+v", history)
	}

	short, err := db.GetPairHistory("a", "b", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(short) != 1 {
		t.Errorf("got %d samples in 2h, want 1", len(short))
	}

	reversed, err := db.GetPairHistory("b", "a", 24)
	if err != nil {
		t.Fatal(err)
	}
	if len(reversed) != 3 || reversed[0].FromID != "a" {
		t.Errorf("reversed pair got %+v, want the 3 a->b samples", reversed)
	}
}

func TestLookbackClamped(t *testing.T) {
	db := newTestDB(t)

	if err := db.SaveBatch(batchAt("b", now.Add(-time.Hour), 10, 20, 30)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveBatch(batchAt("old", now.AddDate(0, 0, -(MaxLookbackHours/24+5)), 10, 20, 30)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		hours int
		want  int
	}{
		{"huge window", math.MaxInt, 3},
		{"beyond retention", MaxLookbackHours * 2, 3},
		{"negative", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recent, err := db.GetRecent(tt.hours)
			if err != nil {
				t.Fatal(err)
			}
			if len(recent) != tt.want {
				t.Errorf("GetRecent(%d) = %d samples, want %d", tt.hours, len(recent), tt.want)
			}
		})
	}

	if _, err := db.GetHourlyStats(math.MaxInt); err != nil {
		t.Errorf("GetHourlyStats(MaxInt) error = %v", err)
	}
}

func TestAggregateHourly(t *testing.T) {
	db := newTestDB(t)

	hour := now.Truncate(time.Hour)
	for _, offset := range []time.Duration{time.Minute, 10 * time.Minute, 20 * time.Minute} {
		if err := db.SaveBatch(batchAt("b", hour.Add(offset), 10, 50)); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.SaveBatch(batchAt("prev", hour.Add(-30*time.Minute), 100)); err != nil {
		t.Fatal(err)
	}

	if err := db.AggregateHourly(); err != nil {
		t.Fatalf("AggregateHourly() error = %v", err)
	}
	// Idempotent
	if err := db.AggregateHourly(); err != nil {
		t.Fatalf("second AggregateHourly() error = %v", err)
	}

	hourly, err := db.GetHourlyStats(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(hourly) != 3 {
		t.Fatalf("got %d hourly rows, want 3: %+v", len(hourly), hourly)
	}

	first := hourly[0]
	if !first.Hour.Equal(hour.Add(-time.Hour)) || first.Samples != 1 || first.MaxMs != 100 {
		t.Errorf("unexpected previous hour row %+v", first)
	}
	for _, h := range hourly[1:] {
		if !h.Hour.Equal(hour) || h.Samples != 3 {
			t.Errorf("unexpected current hour row %+v", h)
		}
	}
}

func TestArchiveOldData(t *testing.T) {
	db := newTestDB(t)

	if err := db.SaveBatch(batchAt("ancient", now.Add(-10*24*time.Hour), 10, 20)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveBatch(batchAt("fresh", now.Add(-time.Hour), 30, 40)); err != nil {
		t.Fatal(err)
	}

	if err := db.ArchiveOldData(7); err != nil {
		t.Fatalf("ArchiveOldData() error = %v", err)
	}

	remaining, err := db.GetRecent(24 * 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Errorf("got %d remaining samples, want 2", len(remaining))
	}

	hourly, err := db.GetHourlyStats(30)
	if err != nil {
		t.Fatal(err)
	}
	if len(hourly) != 2 {
		t.Errorf("expired samples should be kept as hourly stats, got %d rows", len(hourly))
	}
}
