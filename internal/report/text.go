package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"exchange-latency/internal/geo"
	"exchange-latency/internal/latency"
	"exchange-latency/internal/models"
)

func (g *Generator) generateTextReport(outputDir string, from, to models.Endpoint, r models.TimeRange, series []models.HistoricalPoint, hours int) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	now := g.now()
	distance := geo.DistanceBetween(from.Coordinates, to.Coordinates)
	stats := latency.Summarize(series)

	fmt.Fprintf(file, "Exchange Latency Report\n")
	fmt.Fprintf(file, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Period: Last %s\n\n", r)
	fmt.Fprintln(file, strings.Repeat("=", 60))

	fmt.Fprintln(file, "\nCONNECTION")
	fmt.Fprintf(file, "From: %s, %s (%s %s)\n", from.Name, from.Location, from.Provider, from.Region)
	fmt.Fprintf(file, "To:   %s, %s (%s %s)\n", to.Name, to.Location, to.Provider, to.Region)
	fmt.Fprintf(file, "Distance: %s km\n", humanize.CommafWithDigits(distance, 0))
	if from.Provider != to.Provider {
		fmt.Fprintln(file, "Cross-provider: yes")
	}

	fmt.Fprintln(file, "\nSIMULATED HISTORY")
	fmt.Fprintf(file, "  Points: %s\n", humanize.Comma(int64(len(series))))
	fmt.Fprintf(file, "  Min: %s\n", latency.Format(stats.Min))
	fmt.Fprintf(file, "  Max: %s\n", latency.Format(stats.Max))
	fmt.Fprintf(file, "  Average: %s (%s)\n", latency.Format(stats.Avg), latency.Classify(stats.Avg))
	fmt.Fprintln(file)
	fmt.Fprintln(file, strings.Repeat("=", 60))

	pairs, err := g.db.GetPairStats(hours)
	if err != nil {
		return err
	}

	fmt.Fprintln(file, "\nRECORDED PAIRS")

	if len(pairs) == 0 {
		fmt.Fprintln(file, "No recorded samples in this period.")
	}
	for _, p := range pairs {
		fmt.Fprintf(file, "%s -> %s\n", p.FromID, p.ToID)
		fmt.Fprintf(file, "  Samples: %s\n", humanize.Comma(int64(p.Samples)))
		if p.AvgMs.Valid {
			fmt.Fprintf(file, "  Average: %.1f ms\n", p.AvgMs.Float64)
			fmt.Fprintf(file, "  Min/Max: %d/%d ms\n", p.MinMs.Int64, p.MaxMs.Int64)
			fmt.Fprintf(file, "  P95: %.1f ms\n", p.P95Ms)
		}
		if p.LastSeen.Valid {
			fmt.Fprintf(file, "  Last seen: %s\n", humanize.RelTime(time.UnixMilli(p.LastSeen.Int64), now, "ago", "from now"))
		}
		fmt.Fprintln(file)
	}

	fmt.Fprintln(file, strings.Repeat("=", 60))
	fmt.Fprintln(file, "\nLatency values are simulated from great-circle distance.")
	fmt.Fprintln(file, "Charts and the raw series are available in the accompanying files.")

	return nil
}
