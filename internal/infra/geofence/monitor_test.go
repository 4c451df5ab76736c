package geofence

import (
	"log/slog"
	"testing"
	"time"

	"spotalert/internal/domain/entity"
	"spotalert/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	espooLat = 60.2176
	espooLng = 24.8041
)

func newTestMonitor() *Monitor {
	return &Monitor{
		logger:  slog.New(slog.DiscardHandler),
		regions: make(map[uuid.UUID]entity.GeofenceRegion),
		inside:  make(map[uuid.UUID]bool),
		events:  make(chan service.ProviderEvent, eventBuffer),
	}
}

func drain(t *testing.T, m *Monitor) []service.ProviderEvent {
	t.Helper()

	var events []service.ProviderEvent
	for {
		select {
		case event := <-m.Events():
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestMonitor_Report_EmitsPositionUpdate(t *testing.T) {
	m := newTestMonitor()
	at := time.Now()

	m.Report(espooLat, espooLng, at)

	events := drain(t, m)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Position)
	assert.Equal(t, espooLat, events[0].Position.Latitude)
	assert.Equal(t, espooLng, events[0].Position.Longitude)
}

func TestMonitor_Report_EnterThenExit(t *testing.T) {
	m := newTestMonitor()
	id := uuid.New()
	require.NoError(t, m.StartMonitoring(entity.GeofenceRegion{
		LocationID:   id,
		Latitude:     espooLat,
		Longitude:    espooLng,
		RadiusMeters: 50,
	}))

	now := time.Now()

	// Inside the region: one enter crossing, then the position update.
	m.Report(espooLat, espooLng, now)
	events := drain(t, m)
	require.Len(t, events, 2)
	require.NotNil(t, events[0].Region)
	assert.Equal(t, id, events[0].Region.LocationID)
	assert.Equal(t, service.RegionEnter, events[0].Region.Kind)
	require.NotNil(t, events[1].Position)

	// Still inside: no crossing, only the position update.
	m.Report(espooLat+0.0001, espooLng, now.Add(time.Second))
	events = drain(t, m)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Position)

	// Far away: one exit crossing.
	m.Report(espooLat+0.01, espooLng, now.Add(2*time.Second))
	events = drain(t, m)
	require.Len(t, events, 2)
	require.NotNil(t, events[0].Region)
	assert.Equal(t, service.RegionExit, events[0].Region.Kind)
}

func TestMonitor_StopMonitoring_SilencesRegion(t *testing.T) {
	m := newTestMonitor()
	id := uuid.New()
	require.NoError(t, m.StartMonitoring(entity.GeofenceRegion{
		LocationID:   id,
		Latitude:     espooLat,
		Longitude:    espooLng,
		RadiusMeters: 50,
	}))
	require.NoError(t, m.StopMonitoring(id))

	m.Report(espooLat, espooLng, time.Now())

	events := drain(t, m)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Region)
}

func TestMonitor_StartMonitoring_ReplaceResetsState(t *testing.T) {
	m := newTestMonitor()
	id := uuid.New()
	region := entity.GeofenceRegion{
		LocationID:   id,
		Latitude:     espooLat,
		Longitude:    espooLng,
		RadiusMeters: 50,
	}
	require.NoError(t, m.StartMonitoring(region))

	m.Report(espooLat, espooLng, time.Now())
	drain(t, m)

	// Re-registering forgets the inside state, so the next report inside
	// the region produces a fresh enter crossing.
	require.NoError(t, m.StartMonitoring(region))
	m.Report(espooLat, espooLng, time.Now())

	events := drain(t, m)
	require.Len(t, events, 2)
	require.NotNil(t, events[0].Region)
	assert.Equal(t, service.RegionEnter, events[0].Region.Kind)
}

func TestMonitor_Report_DropsWhenBufferFull(t *testing.T) {
	m := newTestMonitor()

	for i := 0; i < eventBuffer+10; i++ {
		m.Report(espooLat, espooLng, time.Now())
	}

	events := drain(t, m)
	assert.Len(t, events, eventBuffer)
}
