package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	// One latitude degree is roughly 111 km regardless of longitude.
	dist := DistanceMeters(60.0, 24.0, 61.0, 24.0)
	assert.InDelta(t, 111000, dist, 1000)

	assert.Zero(t, DistanceMeters(60.2176, 24.8041, 60.2176, 24.8041))
}

func TestDistanceMeters_SmallOffsets(t *testing.T) {
	// One ten-thousandth of a latitude degree is roughly 11 meters, well
	// inside a 50 meter alert radius.
	dist := DistanceMeters(60.2176, 24.8041, 60.2177, 24.8041)
	assert.InDelta(t, 11, dist, 1)
	assert.Less(t, dist, 50.0)
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		want      bool
	}{
		{"Espoo", 60.2176, 24.8041, true},
		{"Equator meridian", 0, 0, true},
		{"Poles", 90, 180, true},
		{"Latitude too high", 90.1, 0, false},
		{"Latitude too low", -90.1, 0, false},
		{"Longitude too high", 0, 180.1, false},
		{"Longitude too low", 0, -180.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCoordinate(tt.latitude, tt.longitude))
		})
	}
}
