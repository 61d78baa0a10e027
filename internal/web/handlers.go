package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wcharczuk/go-chart/v2"

	"exchange-latency/internal/catalog"
	"exchange-latency/internal/database"
	"exchange-latency/internal/latency"
	"exchange-latency/internal/models"
	"exchange-latency/internal/report"
	"exchange-latency/internal/state"
)

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, state.ErrUnknownEndpoint):
		return http.StatusNotFound
	case errors.Is(err, state.ErrInvalidFilter), errors.Is(err, models.ErrUnknownTimeRange):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrNoData):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// queryInt reads an integer query parameter in [0, limit]
func queryInt(c *gin.Context, name string, def, limit int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > limit {
		return 0, fmt.Errorf("invalid %s parameter %q, want 0-%d", name, raw, limit)
	}
	return v, nil
}

// handleExchanges handles /api/exchanges requests
func (s *Server) handleExchanges(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.FilteredEndpoints())
}

// handleRegions handles /api/regions requests
func (s *Server) handleRegions(c *gin.Context) {
	provider := c.Query("provider")
	if provider == "" {
		c.JSON(http.StatusOK, s.catalog.Regions())
		return
	}

	p := models.Provider(provider)
	if !p.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown provider %q", provider)})
		return
	}
	c.JSON(http.StatusOK, s.catalog.RegionsFor(p))
}

// handleProviders handles /api/providers requests
func (s *Server) handleProviders(c *gin.Context) {
	out := make([]providerResponse, 0, len(models.Providers()))
	for _, p := range models.Providers() {
		out = append(out, providerResponse{
			Provider: p,
			Color:    models.ProviderColor(p),
			Regions:  len(s.catalog.RegionsFor(p)),
		})
	}
	c.JSON(http.StatusOK, out)
}

// handleExport handles /api/export requests
func (s *Server) handleExport(c *gin.Context) {
	var buf bytes.Buffer
	if err := catalog.Export(&buf, s.store.FilteredEndpoints(), s.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="exchange-latency-data.json"`)
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// handleLatency handles /api/latency requests
func (s *Server) handleLatency(c *gin.Context) {
	var q latencyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if q.Min == nil && q.Max == nil && q.Limit == nil {
		c.JSON(http.StatusOK, s.store.VisibleConnections())
		return
	}

	bounds := s.store.Filters().LatencyRange
	lo, hi, limit := bounds[0], bounds[1], s.store.VisibleLimit()
	if q.Min != nil {
		lo = *q.Min
	}
	if q.Max != nil {
		hi = *q.Max
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	if hi < lo {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("max %d is below min %d", hi, lo)})
		return
	}

	c.JSON(http.StatusOK, s.store.Connections(lo, hi, limit))
}

// handleSummary handles /api/latency/summary requests
func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Summary())
}

// history generates a fresh series for the requested pair without touching the store
func (s *Server) history(c *gin.Context) (historyResponse, bool) {
	var q pairQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return historyResponse{}, false
	}

	r, err := models.ParseTimeRange(q.Range)
	if err != nil {
		abortWithError(c, err)
		return historyResponse{}, false
	}

	from, ok := s.catalog.Endpoint(q.From)
	if !ok {
		abortWithError(c, fmt.Errorf("%w: %q", state.ErrUnknownEndpoint, q.From))
		return historyResponse{}, false
	}
	to, ok := s.catalog.Endpoint(q.To)
	if !ok {
		abortWithError(c, fmt.Errorf("%w: %q", state.ErrUnknownEndpoint, q.To))
		return historyResponse{}, false
	}

	series := s.model.GenerateHistorical(from, to, r)
	return historyResponse{
		From:   from,
		To:     to,
		Range:  r,
		Series: series,
		Stats:  latency.Summarize(series),
	}, true
}

// handleHistory handles /api/history requests
func (s *Server) handleHistory(c *gin.Context) {
	h, ok := s.history(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h)
}

// handleHistoryCSV handles /api/history.csv requests
func (s *Server) handleHistoryCSV(c *gin.Context) {
	h, ok := s.history(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteSeriesCSV(&buf, h.Series); err != nil {
		abortWithError(c, err)
		return
	}
	filename := fmt.Sprintf("%s_%s_%s.csv", h.From.ID, h.To.ID, h.Range)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// handleHistoryChart handles /api/history/chart.png requests
func (s *Server) handleHistoryChart(c *gin.Context) {
	h, ok := s.history(c)
	if !ok {
		return
	}

	title := fmt.Sprintf("%s (%s) -> %s (%s), %s", h.From.Name, h.From.Location, h.To.Name, h.To.Location, h.Range)
	var buf bytes.Buffer
	if err := report.RenderSeries(&buf, title, h.Range, h.Series); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleRecent handles /api/recent requests
func (s *Server) handleRecent(c *gin.Context) {
	hours, err := queryInt(c, "hours", 1, database.MaxLookbackHours)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := s.db.GetRecent(hours)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// handleStats handles /api/stats requests
func (s *Server) handleStats(c *gin.Context) {
	hours, err := queryInt(c, "hours", 24, database.MaxLookbackHours)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := s.db.GetPairStats(hours)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleHourlyStats handles /api/stats/hourly requests
func (s *Server) handleHourlyStats(c *gin.Context) {
	days, err := queryInt(c, "days", 7, database.MaxLookbackHours/24)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := s.db.GetHourlyStats(days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleStatsChart handles /api/stats/chart.png requests
func (s *Server) handleStatsChart(c *gin.Context) {
	hours, err := queryInt(c, "hours", 24, database.MaxLookbackHours)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := s.db.GetPairStats(hours)
	if err != nil {
		abortWithError(c, err)
		return
	}

	bars, err := report.PairBarChart(stats)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := bars.Render(chart.PNG, &buf); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleState handles /api/state requests
func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

// handleFilters handles PUT /api/filters requests
func (s *Server) handleFilters(c *gin.Context) {
	var req filtersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.LatencyRange != nil {
		if err := s.store.SetLatencyRange(req.LatencyRange[0], req.LatencyRange[1]); err != nil {
			abortWithError(c, err)
			return
		}
	}
	if req.Providers != nil {
		if err := s.store.SetSelectedProviders(*req.Providers); err != nil {
			abortWithError(c, err)
			return
		}
	}
	if req.Exchanges != nil {
		s.store.SetSelectedExchanges(*req.Exchanges)
	}
	if req.SearchQuery != nil {
		s.store.SetSearchQuery(*req.SearchQuery)
	}
	if req.ShowRealtime != nil {
		s.store.SetShowRealtime(*req.ShowRealtime)
	}
	if req.ShowHistorical != nil {
		s.store.SetShowHistorical(*req.ShowHistorical)
	}
	if req.ShowRegions != nil {
		s.store.SetShowRegions(*req.ShowRegions)
	}
	if req.DarkMode != nil {
		s.store.SetDarkMode(*req.DarkMode)
	}

	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"filters": snap.Filters, "display": snap.Display})
}

// handleTimeRange handles PUT /api/time-range requests
func (s *Server) handleTimeRange(c *gin.Context) {
	var req timeRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := models.ParseTimeRange(req.Range)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := s.store.SetTimeRange(r); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timeRange":      r,
		"historicalData": s.store.Historical(),
		"stats":          s.store.HistoricalStats(),
	})
}

// handleSelect handles POST /api/selection requests
func (s *Server) handleSelect(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.SelectConnection(req.From, req.To); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.store.Snapshot())
}

// handleClearSelection handles DELETE /api/selection requests
func (s *Server) handleClearSelection(c *gin.Context) {
	s.store.ClearSelection()
	c.Status(http.StatusNoContent)
}

// handleMarkerClick handles POST /api/markers/:id/click requests
func (s *Server) handleMarkerClick(c *gin.Context) {
	result, err := s.store.ClickMarker(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"result":             result,
		"firstSelected":      snap.FirstSelected,
		"selectedConnection": snap.Selection,
		"showHistorical":     snap.Display.ShowHistorical,
	})
}
