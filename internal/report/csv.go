package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"exchange-latency/internal/models"
)

// WriteSeriesCSV writes a historical series with a fixed column order
func WriteSeriesCSV(w io.Writer, series []models.HistoricalPoint) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"timestamp", "latency_ms", "min_ms", "max_ms", "avg_ms"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range series {
		record := []string{
			p.Time().UTC().Format(time.RFC3339),
			strconv.Itoa(p.Latency),
			strconv.Itoa(p.Min),
			strconv.Itoa(p.Max),
			strconv.Itoa(p.Avg),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
