package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"exchange-latency/internal/latency"
	"exchange-latency/internal/models"
)

// ErrNoData is returned when there is nothing to draw
var ErrNoData = errors.New("no data to chart")

const maxBars = 20

var gridStyle = chart.Style{
	StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
	StrokeWidth: 1.0,
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func timeFormatter(r models.TimeRange) chart.ValueFormatter {
	switch r {
	case models.TimeRange1h:
		return chart.TimeMinuteValueFormatter
	case models.TimeRange24h:
		return chart.TimeHourValueFormatter
	default:
		return chart.TimeDateValueFormatter
	}
}

// SeriesChart builds the historical latency chart: the sampled latency with
// its min and max band and a moving average
func SeriesChart(title string, r models.TimeRange, series []models.HistoricalPoint) (chart.Chart, error) {
	if len(series) < 2 {
		return chart.Chart{}, ErrNoData
	}

	times := make([]time.Time, len(series))
	values := make([]float64, len(series))
	mins := make([]float64, len(series))
	maxs := make([]float64, len(series))
	for i, p := range series {
		times[i] = p.Time()
		values[i] = float64(p.Latency)
		mins[i] = float64(p.Min)
		maxs[i] = float64(p.Max)
	}

	stats := latency.Summarize(series)
	current := chart.TimeSeries{
		Name: "Latency",
		Style: chart.Style{
			StrokeColor: hexColor(latency.Color(stats.Avg)),
			StrokeWidth: 2,
		},
		XValues: times,
		YValues: values,
	}

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: timeFormatter(r),
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Min",
				Style: chart.Style{
					StrokeColor:     chart.GetDefaultColor(1),
					StrokeWidth:     1,
					StrokeDashArray: []float64{2, 2},
				},
				XValues: times,
				YValues: mins,
			},
			chart.TimeSeries{
				Name: "Max",
				Style: chart.Style{
					StrokeColor:     chart.GetDefaultColor(2),
					StrokeWidth:     1,
					StrokeDashArray: []float64{2, 2},
				},
				XValues: times,
				YValues: maxs,
			},
			current,
		},
	}

	// Add moving average
	if len(values) > 10 {
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(0),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: current,
			Period:      10,
		})
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	return graph, nil
}

// RenderSeries draws the historical chart as PNG
func RenderSeries(w io.Writer, title string, r models.TimeRange, series []models.HistoricalPoint) error {
	graph, err := SeriesChart(title, r, series)
	if err != nil {
		return err
	}
	return graph.Render(chart.PNG, w)
}

func pairTitle(from, to models.Endpoint) string {
	return fmt.Sprintf("%s (%s) → %s (%s)", from.Name, from.Location, to.Name, to.Location)
}

func (g *Generator) generateHistoryChart(outputDir string, from, to models.Endpoint, r models.TimeRange, series []models.HistoricalPoint) error {
	filename := filepath.Join(outputDir, fmt.Sprintf("history_%s_%s_%s.png",
		sanitizeFilename(from.ID), sanitizeFilename(to.ID), r))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return RenderSeries(file, "Simulated Latency - "+pairTitle(from, to), r, series)
}

// generateRecordedChart charts the persisted live samples of the pair
func (g *Generator) generateRecordedChart(outputDir string, from, to models.Endpoint, hours int) error {
	samples, err := g.db.GetPairHistory(from.ID, to.ID, hours)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return nil
	}

	times := make([]time.Time, len(samples))
	values := make([]float64, len(samples))
	for i, s := range samples {
		times[i] = s.Time()
		values[i] = float64(s.Latency)
	}

	graph := chart.Chart{
		Title: "Recorded Latency - " + pairTitle(from, to),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: from.ID + " → " + to.ID,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: times,
				YValues: values,
			},
		},
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("recorded_%s_%s.png",
		sanitizeFilename(from.ID), sanitizeFilename(to.ID)))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

// PairBarChart builds a bar chart of the slowest pairs by average latency
func PairBarChart(stats []models.PairStats) (chart.BarChart, error) {
	sorted := make([]models.PairStats, 0, len(stats))
	for _, s := range stats {
		if s.AvgMs.Valid {
			sorted = append(sorted, s)
		}
	}
	if len(sorted) == 0 {
		return chart.BarChart{}, ErrNoData
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AvgMs.Float64 > sorted[j].AvgMs.Float64
	})
	if len(sorted) > maxBars {
		sorted = sorted[:maxBars]
	}

	var values []chart.Value
	top := sorted[0].AvgMs.Float64
	for _, s := range sorted {
		avg := s.AvgMs.Float64
		values = append(values, chart.Value{
			Label: s.FromID + " → " + s.ToID,
			Value: avg,
			Style: chart.Style{
				FillColor:   hexColor(latency.Color(int(avg))),
				StrokeColor: hexColor(latency.Color(int(avg))),
			},
		})
	}

	return chart.BarChart{
		Title: "Average Latency by Pair",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: top * 1.1,
			},
		},
		Width:    1600,
		Height:   500,
		Bars:     values,
		BarWidth: 50,
	}, nil
}

func (g *Generator) generatePairBarChart(outputDir string, hours int) error {
	stats, err := g.db.GetPairStats(hours)
	if err != nil {
		return err
	}

	graph, err := PairBarChart(stats)
	if errors.Is(err, ErrNoData) {
		return nil
	}
	if err != nil {
		return err
	}

	filename := filepath.Join(outputDir, "pair_latency.png")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}
