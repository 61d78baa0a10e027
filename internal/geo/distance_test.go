package geo

import (
	"math"
	"testing"

	"exchange-latency/internal/models"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		expected   float64
		tolerance  float64
	}{
		{
			name: "coincident points",
			lat1: 35.6762, lon1: 139.6503,
			lat2: 35.6762, lon2: 139.6503,
			expected: 0,
		},
		{
			name: "Tokyo to Singapore",
			lat1: 35.6762, lon1: 139.6503,
			lat2: 1.3521, lon2: 103.8198,
			expected:  5312,
			tolerance: 53.12,
		},
		{
			name: "antipodal points",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 180,
			expected:  math.Pi * EarthRadiusKm,
			tolerance: 1,
		},
		{
			name: "pole to pole",
			lat1: 90, lon1: 0,
			lat2: -90, lon2: 0,
			expected:  math.Pi * EarthRadiusKm,
			tolerance: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("Distance() = %v, want %v ± %v", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	points := []models.Coordinates{
		{Lat: 35.6762, Lng: 139.6503},
		{Lat: 1.3521, Lng: 103.8198},
		{Lat: 53.3498, Lng: -6.2603},
		{Lat: 37.4316, Lng: -78.6569},
		{Lat: -33.8688, Lng: 151.2093},
	}

	for _, a := range points {
		for _, b := range points {
			ab := DistanceBetween(a, b)
			ba := DistanceBetween(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance not symmetric for %v/%v: %v vs %v", a, b, ab, ba)
			}
			if ab < 0 {
				t.Errorf("negative distance for %v/%v: %v", a, b, ab)
			}
		}
	}
}
