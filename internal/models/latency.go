package models

import (
	"errors"
	"fmt"
	"time"
)

// Provider identifies the cloud vendor hosting an endpoint
type Provider string

const (
	ProviderAWS   Provider = "AWS"
	ProviderGCP   Provider = "GCP"
	ProviderAzure Provider = "Azure"
)

// Providers returns the enumerated providers in display order
func Providers() []Provider {
	return []Provider{ProviderAWS, ProviderGCP, ProviderAzure}
}

// Valid reports whether p is one of the enumerated providers
func (p Provider) Valid() bool {
	switch p {
	case ProviderAWS, ProviderGCP, ProviderAzure:
		return true
	}
	return false
}

// ProviderColor returns the marker colour for a provider, or "" for unknown providers
func ProviderColor(p Provider) string {
	switch p {
	case ProviderAWS:
		return "#FF9900"
	case ProviderGCP:
		return "#4285F4"
	case ProviderAzure:
		return "#0089D6"
	}
	return ""
}

// Coordinates is a latitude/longitude pair in degrees
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid reports whether the coordinates are within [-90,90] / [-180,180]
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Endpoint represents a simulated exchange server
type Endpoint struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Location    string      `json:"location" yaml:"location"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	Provider    Provider    `json:"provider" yaml:"provider"`
	Region      string      `json:"region" yaml:"region"`
	Color       string      `json:"color" yaml:"color"`
}

// CloudRegion represents a provider region drawn on the globe
type CloudRegion struct {
	ID          string      `json:"id" yaml:"id"`
	Provider    Provider    `json:"provider" yaml:"provider"`
	Name        string      `json:"name" yaml:"name"`
	Code        string      `json:"code" yaml:"code"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	ServerCount int         `json:"serverCount" yaml:"server_count"`
}

// LatencySample is one simulated latency between two endpoints
type LatencySample struct {
	FromID    string `json:"fromId"`
	ToID      string `json:"toId"`
	Latency   int    `json:"latency"`   // milliseconds, always >= 1
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// Time returns the capture timestamp as a time.Time
func (s LatencySample) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// LatencyBatch is a full pairwise snapshot produced by one generation cycle
type LatencyBatch struct {
	ID          string          `json:"id"`
	GeneratedAt int64           `json:"generatedAt"`
	Samples     []LatencySample `json:"samples"`
}

// HistoricalPoint is a single instant of a synthetic latency series
type HistoricalPoint struct {
	Timestamp int64 `json:"timestamp"`
	Latency   int   `json:"latency"`
	Min       int   `json:"min"`
	Max       int   `json:"max"`
	Avg       int   `json:"avg"`
}

// Time returns the point timestamp as a time.Time
func (p HistoricalPoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// ErrUnknownTimeRange is returned when parsing an unsupported time range
var ErrUnknownTimeRange = errors.New("unknown time range")

// TimeRange is a named historical window
type TimeRange string

const (
	TimeRange1h  TimeRange = "1h"
	TimeRange24h TimeRange = "24h"
	TimeRange7d  TimeRange = "7d"
	TimeRange30d TimeRange = "30d"
)

// TimeRanges returns the supported ranges, shortest first
func TimeRanges() []TimeRange {
	return []TimeRange{TimeRange1h, TimeRange24h, TimeRange7d, TimeRange30d}
}

// ParseTimeRange converts a string such as "24h" to a TimeRange
func ParseTimeRange(s string) (TimeRange, error) {
	r := TimeRange(s)
	if _, _, ok := r.Window(); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeRange, s)
	}
	return r, nil
}

// Window returns the total duration and sampling interval of the range
func (r TimeRange) Window() (duration, interval time.Duration, ok bool) {
	switch r {
	case TimeRange1h:
		return time.Hour, time.Minute, true
	case TimeRange24h:
		return 24 * time.Hour, 15 * time.Minute, true
	case TimeRange7d:
		return 7 * 24 * time.Hour, time.Hour, true
	case TimeRange30d:
		return 30 * 24 * time.Hour, 6 * time.Hour, true
	}
	return 0, 0, false
}

// Severity buckets a latency value for colour coding
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Connection is a latency sample joined with both endpoints for rendering
type Connection struct {
	From     Endpoint `json:"from"`
	To       Endpoint `json:"to"`
	Latency  int      `json:"latency"`
	Severity Severity `json:"severity"`
	Color    string   `json:"color"`
}
