package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNoMatch is returned when the geocoder finds no coordinate for a query.
var ErrNoMatch = errors.New("no coordinate found for query")

// GeocodeResult is a resolved free-text query.
type GeocodeResult struct {
	DisplayName string
	Latitude    float64
	Longitude   float64
}

// Geocoder resolves a free-text address query to a coordinate. Used only by
// the search flow; the proximity engine never geocodes.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (*GeocodeResult, error)
}
