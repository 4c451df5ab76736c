// Package geofence provides an in-process region-monitoring facility. It
// tracks the set of registered circular regions and turns reported positions
// into position-update and enter/exit events, mirroring what a platform
// location service would deliver.
package geofence

import (
	"log/slog"
	"sync"
	"time"

	"spotalert/internal/domain/entity"
	"spotalert/internal/domain/service"
	"spotalert/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// eventBuffer bounds the delivery channel. Position updates can arrive many
// times per second while the consumer is busy; overflow is dropped with a log
// line rather than blocking the reporter.
const eventBuffer = 256

// Monitor implements service.GeofenceProvider. It also acts as the position
// intake: delivery handlers call Report with live positions.
type Monitor struct {
	logger *slog.Logger

	mu      sync.Mutex
	regions map[uuid.UUID]entity.GeofenceRegion
	inside  map[uuid.UUID]bool

	events chan service.ProviderEvent
}

// Params holds dependencies for the Monitor, injected by Fx.
type Params struct {
	fx.In

	Logger *slog.Logger
}

// NewMonitor creates the in-process geofence provider.
func NewMonitor(params Params) *Monitor {
	return &Monitor{
		logger:  params.Logger,
		regions: make(map[uuid.UUID]entity.GeofenceRegion),
		inside:  make(map[uuid.UUID]bool),
		events:  make(chan service.ProviderEvent, eventBuffer),
	}
}

// NewProvider exposes the Monitor under its domain interface.
func NewProvider(monitor *Monitor) service.GeofenceProvider {
	return monitor
}

// StartMonitoring registers a region. Re-registering the same region replaces
// its geometry and resets its inside/outside state.
func (m *Monitor) StartMonitoring(region entity.GeofenceRegion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.regions[region.LocationID] = region
	delete(m.inside, region.LocationID)

	return nil
}

// StopMonitoring deregisters a region. Effective immediately: no event for
// this region is produced by any later Report call.
func (m *Monitor) StopMonitoring(locationID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.regions, locationID)
	delete(m.inside, locationID)

	return nil
}

// Events returns the single delivery channel drained by the engine.
func (m *Monitor) Events() <-chan service.ProviderEvent {
	return m.events
}

// Report feeds a live position into the monitor. Boundary crossings are
// emitted before the position update so the consumer sees enter events first.
func (m *Monitor) Report(latitude, longitude float64, at time.Time) {
	m.mu.Lock()
	var crossings []service.RegionEvent
	for id, region := range m.regions {
		dist := util.DistanceMeters(latitude, longitude, region.Latitude, region.Longitude)
		within := dist <= region.RadiusMeters
		if within == m.inside[id] {
			continue
		}

		m.inside[id] = within
		kind := service.RegionExit
		if within {
			kind = service.RegionEnter
		}
		crossings = append(crossings, service.RegionEvent{LocationID: id, Kind: kind, At: at})
	}
	m.mu.Unlock()

	for i := range crossings {
		m.deliver(service.ProviderEvent{Region: &crossings[i]})
	}
	m.deliver(service.ProviderEvent{Position: &service.PositionUpdate{
		Latitude:  latitude,
		Longitude: longitude,
		At:        at,
	}})
}

func (m *Monitor) deliver(event service.ProviderEvent) {
	select {
	case m.events <- event:
	default:
		m.logger.Warn("geofence event buffer full, dropping event")
	}
}
