package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"spotalert/internal/infra/geofence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProximity struct {
	message string
	active  bool
}

func (p *stubProximity) CurrentAlert() (string, bool) {
	return p.message, p.active
}

func newTestPositionHandler(proximity *stubProximity) *PositionHandler {
	return &PositionHandler{
		monitor:     geofence.NewMonitor(geofence.Params{Logger: slog.New(slog.DiscardHandler)}),
		proximityUC: proximity,
	}
}

func TestPositionHandler_ReportPosition_Accepted(t *testing.T) {
	handler := newTestPositionHandler(&stubProximity{})

	c, rec := newLocationTestContext(t, http.MethodPost, "/positions",
		`{"latitude":60.2176,"longitude":24.8041}`)

	require.NoError(t, handler.ReportPosition(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// The reported position reaches the monitor's event channel.
	select {
	case event := <-handler.monitor.Events():
		require.NotNil(t, event.Position)
		assert.InDelta(t, 60.2176, event.Position.Latitude, 0.0001)
	default:
		t.Fatal("expected a position event")
	}
}

func TestPositionHandler_ReportPosition_InvalidCoordinate(t *testing.T) {
	handler := newTestPositionHandler(&stubProximity{})

	c, rec := newLocationTestContext(t, http.MethodPost, "/positions",
		`{"latitude":95.0,"longitude":24.8041}`)

	require.NoError(t, handler.ReportPosition(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPositionHandler_CurrentAlert(t *testing.T) {
	handler := newTestPositionHandler(&stubProximity{message: "You are near Grocery", active: true})

	c, rec := newLocationTestContext(t, http.MethodGet, "/alerts/current", "")

	require.NoError(t, handler.CurrentAlert(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are near Grocery")
}

func TestPositionHandler_CurrentAlert_Inactive(t *testing.T) {
	handler := newTestPositionHandler(&stubProximity{})

	c, rec := newLocationTestContext(t, http.MethodGet, "/alerts/current", "")

	require.NoError(t, handler.CurrentAlert(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"active":false`)
}
