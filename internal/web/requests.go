package web

import "exchange-latency/internal/models"

// pairQuery selects an endpoint pair and window
type pairQuery struct {
	From  string `form:"from" binding:"required"`
	To    string `form:"to" binding:"required"`
	Range string `form:"range,default=24h"`
}

// latencyQuery overrides the store's latency range and limit
type latencyQuery struct {
	Min   *int `form:"min" binding:"omitempty,gte=0"`
	Max   *int `form:"max" binding:"omitempty,gte=0"`
	Limit *int `form:"limit" binding:"omitempty,gte=0"`
}

// filtersRequest is a partial update; nil fields are left unchanged
type filtersRequest struct {
	Exchanges      *[]string          `json:"exchanges"`
	Providers      *[]models.Provider `json:"providers" binding:"omitempty,dive,oneof=AWS GCP Azure"`
	LatencyRange   *[2]int            `json:"latencyRange"`
	SearchQuery    *string            `json:"searchQuery" binding:"omitempty,max=200"`
	ShowRealtime   *bool              `json:"showRealtime"`
	ShowHistorical *bool              `json:"showHistorical"`
	ShowRegions    *bool              `json:"showRegions"`
	DarkMode       *bool              `json:"isDarkMode"`
}

type timeRangeRequest struct {
	Range string `json:"range" binding:"required"`
}

type selectionRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required,nefield=From"`
}

// historyResponse is a freshly generated series for one pair
type historyResponse struct {
	From   models.Endpoint          `json:"from"`
	To     models.Endpoint          `json:"to"`
	Range  models.TimeRange         `json:"range"`
	Series []models.HistoricalPoint `json:"series"`
	Stats  models.Stats             `json:"stats"`
}

type providerResponse struct {
	Provider models.Provider `json:"provider"`
	Color    string          `json:"color"`
	Regions  int             `json:"regions"`
}
