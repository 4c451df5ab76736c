package service

import (
	"time"

	"spotalert/internal/domain/entity"

	"github.com/google/uuid"
)

// RegionEventKind distinguishes geofence boundary crossings.
type RegionEventKind string

const (
	RegionEnter RegionEventKind = "enter"
	RegionExit  RegionEventKind = "exit"
)

// PositionUpdate is a live position report.
type PositionUpdate struct {
	Latitude  float64
	Longitude float64
	At        time.Time
}

// RegionEvent is a boundary crossing for a monitored region. The region
// identifier equals the AlertLocation ID.
type RegionEvent struct {
	LocationID uuid.UUID
	Kind       RegionEventKind
	At         time.Time
}

// ProviderEvent is a single delivery from the geofence provider. Exactly one
// of Position and Region is set.
type ProviderEvent struct {
	Position *PositionUpdate
	Region   *RegionEvent
}

// GeofenceProvider is the region-monitoring facility the engine subscribes
// regions with. Events are pushed onto a single channel that the engine
// drains sequentially; late events for a deregistered region may still be
// delivered and must be discarded by the consumer.
type GeofenceProvider interface {
	StartMonitoring(region entity.GeofenceRegion) error
	StopMonitoring(locationID uuid.UUID) error
	Events() <-chan ProviderEvent
}
