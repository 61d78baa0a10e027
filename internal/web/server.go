package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"exchange-latency/internal/catalog"
	"exchange-latency/internal/latency"
	"exchange-latency/internal/models"
	"exchange-latency/internal/state"
)

//go:embed static/*
var staticFiles embed.FS

// Server handles web requests
type Server struct {
	store   *state.Store
	catalog *catalog.Catalog
	model   *latency.Model
	db      models.Database
	port    int
	origins []string
	now     func() time.Time
	http    *http.Server
}

// Options wires the server's collaborators
type Options struct {
	Store          *state.Store
	Catalog        *catalog.Catalog
	Model          *latency.Model
	Database       models.Database
	Port           int
	AllowedOrigins []string
}

// New creates a new web server
func New(opts Options) *Server {
	s := &Server{
		store:   opts.Store,
		catalog: opts.Catalog,
		model:   opts.Model,
		db:      opts.Database,
		port:    opts.Port,
		origins: opts.AllowedOrigins,
		now:     time.Now,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	router.Use(corsMiddleware(s.origins))

	api := router.Group("/api")
	{
		// Reference data
		api.GET("/exchanges", s.handleExchanges)
		api.GET("/regions", s.handleRegions)
		api.GET("/providers", s.handleProviders)
		api.GET("/export", s.handleExport)

		// Live snapshot
		api.GET("/latency", s.handleLatency)
		api.GET("/latency/summary", s.handleSummary)

		// Historical series
		api.GET("/history", s.handleHistory)
		api.GET("/history.csv", s.handleHistoryCSV)
		api.GET("/history/chart.png", s.handleHistoryChart)

		// Persisted samples
		api.GET("/recent", s.handleRecent)
		api.GET("/stats", s.handleStats)
		api.GET("/stats/hourly", s.handleHourlyStats)
		api.GET("/stats/chart.png", s.handleStatsChart)

		// State transitions
		api.GET("/state", s.handleState)
		api.PUT("/filters", s.handleFilters)
		api.PUT("/time-range", s.handleTimeRange)
		api.POST("/selection", s.handleSelect)
		api.DELETE("/selection", s.handleClearSelection)
		api.POST("/markers/:id/click", s.handleMarkerClick)
	}

	// Static files - serve embedded static/ directory as webroot
	staticFS, _ := fs.Sub(staticFiles, "static")
	fileServer := http.FileServer(http.FS(staticFS))
	router.NoRoute(func(c *gin.Context) {
		fileServer.ServeHTTP(c.Writer, c.Request)
	})

	return router
}

// Start starts the web server and blocks until it stops. It returns nil
// once Stop has been called, including when Stop ran first.
func (s *Server) Start() error {
	slog.Info("web server starting", slog.Int("port", s.port))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
