package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spotalert/internal/delivery/http/validator"
	"spotalert/internal/domain/entity"
	domainerrors "spotalert/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistry struct {
	locations []*entity.AlertLocation
	index     map[uuid.UUID]*entity.AlertLocation
}

func newStubRegistry() *stubRegistry {
	return &stubRegistry{index: make(map[uuid.UUID]*entity.AlertLocation)}
}

func (r *stubRegistry) Add(_ context.Context, location *entity.AlertLocation) error {
	if _, ok := r.index[location.ID]; ok {
		return nil
	}
	r.locations = append(r.locations, location)
	r.index[location.ID] = location

	return nil
}

func (r *stubRegistry) Remove(_ context.Context, id uuid.UUID) error {
	delete(r.index, id)
	for i, loc := range r.locations {
		if loc.ID == id {
			r.locations = append(r.locations[:i], r.locations[i+1:]...)

			break
		}
	}

	return nil
}

func (r *stubRegistry) UpdateReminder(_ context.Context, id uuid.UUID, reminder string) (*entity.AlertLocation, error) {
	loc, ok := r.index[id]
	if !ok {
		return nil, domainerrors.ErrLocationNotFound
	}
	loc.Reminder = reminder

	return loc, nil
}

func (r *stubRegistry) Locations() []*entity.AlertLocation {
	return r.locations
}

func (r *stubRegistry) Find(id uuid.UUID) (*entity.AlertLocation, bool) {
	loc, ok := r.index[id]

	return loc, ok
}

func newLocationTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestLocationHandler(registry *stubRegistry) *LocationHandler {
	return &LocationHandler{
		registryUC: registry,
		logger:     slog.New(slog.DiscardHandler),
	}
}

func TestLocationHandler_CreateLocation_Success(t *testing.T) {
	registry := newStubRegistry()
	handler := newTestLocationHandler(registry)

	c, rec := newLocationTestContext(t, http.MethodPost, "/locations",
		`{"name":"Grocery","latitude":60.2176,"longitude":24.8041,"reminder":"buy milk"}`)

	require.NoError(t, handler.CreateLocation(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, registry.locations, 1)
	assert.Equal(t, "Grocery", registry.locations[0].Name)
	assert.Equal(t, "buy milk", registry.locations[0].Reminder)
}

func TestLocationHandler_CreateLocation_InvalidCoordinate(t *testing.T) {
	registry := newStubRegistry()
	handler := newTestLocationHandler(registry)

	c, rec := newLocationTestContext(t, http.MethodPost, "/locations",
		`{"name":"Broken","latitude":100.0,"longitude":24.8041}`)

	require.NoError(t, handler.CreateLocation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, registry.locations)
}

func TestLocationHandler_CreateLocation_MissingName(t *testing.T) {
	registry := newStubRegistry()
	handler := newTestLocationHandler(registry)

	c, rec := newLocationTestContext(t, http.MethodPost, "/locations",
		`{"latitude":60.2176,"longitude":24.8041}`)

	require.NoError(t, handler.CreateLocation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocationHandler_ListLocations(t *testing.T) {
	registry := newStubRegistry()
	require.NoError(t, registry.Add(context.Background(),
		entity.NewAlertLocation("Grocery", 60.2176, 24.8041, "")))
	handler := newTestLocationHandler(registry)

	c, rec := newLocationTestContext(t, http.MethodGet, "/locations", "")

	require.NoError(t, handler.ListLocations(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Grocery")
}

func TestLocationHandler_UpdateReminder_Success(t *testing.T) {
	registry := newStubRegistry()
	loc := entity.NewAlertLocation("Grocery", 60.2176, 24.8041, "buy milk")
	require.NoError(t, registry.Add(context.Background(), loc))
	handler := newTestLocationHandler(registry)

	c, rec := newLocationTestContext(t, http.MethodPatch, "/locations/"+loc.ID.String(),
		`{"reminder":"buy bread"}`)
	c.SetParamNames("id")
	c.SetParamValues(loc.ID.String())

	require.NoError(t, handler.UpdateReminder(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "buy bread", registry.index[loc.ID].Reminder)
}

func TestLocationHandler_UpdateReminder_NotFound(t *testing.T) {
	handler := newTestLocationHandler(newStubRegistry())

	id := uuid.New().String()
	c, rec := newLocationTestContext(t, http.MethodPatch, "/locations/"+id, `{"reminder":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, handler.UpdateReminder(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "LOCATION_NOT_FOUND")
}

func TestLocationHandler_UpdateReminder_InvalidID(t *testing.T) {
	handler := newTestLocationHandler(newStubRegistry())

	c, rec := newLocationTestContext(t, http.MethodPatch, "/locations/not-a-uuid", `{"reminder":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.UpdateReminder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocationHandler_DeleteLocation_Success(t *testing.T) {
	registry := newStubRegistry()
	loc := entity.NewAlertLocation("Grocery", 60.2176, 24.8041, "")
	require.NoError(t, registry.Add(context.Background(), loc))
	handler := newTestLocationHandler(registry)

	c, rec := newLocationTestContext(t, http.MethodDelete, "/locations/"+loc.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(loc.ID.String())

	require.NoError(t, handler.DeleteLocation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, registry.locations)
}

func TestLocationHandler_LocationQR_NotFound(t *testing.T) {
	handler := newTestLocationHandler(newStubRegistry())

	id := uuid.New().String()
	c, rec := newLocationTestContext(t, http.MethodGet, "/locations/"+id+"/qrcode", "")
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, handler.LocationQR(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
