package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"exchange-latency/internal/catalog"
	"exchange-latency/internal/latency"
	"exchange-latency/internal/models"
)

// Generator creates static chart images and a text summary for a pair
type Generator struct {
	db      models.Database
	model   *latency.Model
	catalog *catalog.Catalog
	now     func() time.Time
}

// NewGenerator creates a new report generator
func NewGenerator(db models.Database, model *latency.Model, cat *catalog.Catalog) *Generator {
	return &Generator{db: db, model: model, catalog: cat, now: time.Now}
}

// GenerateReport writes a report directory for the pair and time range and
// returns its path
func (g *Generator) GenerateReport(outputDir, fromID, toID string, r models.TimeRange) (string, error) {
	from, ok := g.catalog.Endpoint(fromID)
	if !ok {
		return "", fmt.Errorf("unknown endpoint %q", fromID)
	}
	to, ok := g.catalog.Endpoint(toID)
	if !ok {
		return "", fmt.Errorf("unknown endpoint %q", toID)
	}
	duration, _, ok := r.Window()
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownTimeRange, r)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := g.now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("latency_report_%s", timestamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	series := g.model.GenerateHistorical(from, to, r)
	hours := int(duration / time.Hour)

	// Generate various charts
	if err := g.generateHistoryChart(reportDir, from, to, r, series); err != nil {
		slog.Error("failed to generate history chart", slog.String("error", err.Error()))
	}

	if err := g.generateRecordedChart(reportDir, from, to, hours); err != nil {
		slog.Error("failed to generate recorded chart", slog.String("error", err.Error()))
	}

	if err := g.generatePairBarChart(reportDir, hours); err != nil {
		slog.Error("failed to generate pair chart", slog.String("error", err.Error()))
	}

	if err := g.writeSeriesFile(reportDir, series); err != nil {
		slog.Error("failed to write series csv", slog.String("error", err.Error()))
	}

	if err := g.generateTextReport(reportDir, from, to, r, series, hours); err != nil {
		slog.Error("failed to generate text report", slog.String("error", err.Error()))
	}

	slog.Info("report generated", slog.String("dir", reportDir))
	return reportDir, nil
}

func (g *Generator) writeSeriesFile(dir string, series []models.HistoricalPoint) error {
	file, err := os.Create(filepath.Join(dir, "series.csv"))
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteSeriesCSV(file, series)
}

// sanitizeFilename replaces dots and special characters for safe filenames
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(s)
}
