package impl

import (
	"testing"
	"time"

	"spotalert/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Espoo city-center coordinates used as the reference position throughout.
const (
	baseLat = 60.2176
	baseLng = 24.8041

	// One ten-thousandth of a latitude degree is roughly 11 meters.
	latStep = 0.0001
)

func TestDetector_Evaluate_EmptyRegistry(t *testing.T) {
	d := newDetector(50, 300*time.Second)

	near, fired := d.Evaluate(baseLat, baseLng, nil, time.Now())
	assert.Nil(t, near)
	assert.Nil(t, fired)
}

func TestDetector_Evaluate_OutOfRange(t *testing.T) {
	d := newDetector(50, 300*time.Second)
	far := entity.NewAlertLocation("Station", baseLat+0.01, baseLng, "")

	near, fired := d.Evaluate(baseLat, baseLng, []*entity.AlertLocation{far}, time.Now())
	assert.Nil(t, near)
	assert.Nil(t, fired)
}

func TestDetector_Evaluate_WithinRadiusFires(t *testing.T) {
	d := newDetector(50, 300*time.Second)
	store := entity.NewAlertLocation("Grocery", baseLat+latStep, baseLng, "buy milk")

	near, fired := d.Evaluate(baseLat, baseLng, []*entity.AlertLocation{store}, time.Now())
	require.NotNil(t, near)
	assert.Equal(t, store.ID, near.ID)
	require.NotNil(t, fired)
	assert.Equal(t, store.ID, fired.ID)
}

func TestDetector_Evaluate_NearestWins(t *testing.T) {
	d := newDetector(50, 300*time.Second)
	farther := entity.NewAlertLocation("Pharmacy", baseLat+3*latStep, baseLng, "")
	closer := entity.NewAlertLocation("Bakery", baseLat+latStep, baseLng, "")

	near, _ := d.Evaluate(baseLat, baseLng, []*entity.AlertLocation{farther, closer}, time.Now())
	require.NotNil(t, near)
	assert.Equal(t, closer.ID, near.ID)
}

func TestDetector_Evaluate_TieGoesToEarliestEntry(t *testing.T) {
	d := newDetector(50, 300*time.Second)
	first := entity.NewAlertLocation("First", baseLat+latStep, baseLng, "")
	second := entity.NewAlertLocation("Second", baseLat+latStep, baseLng, "")

	near, _ := d.Evaluate(baseLat, baseLng, []*entity.AlertLocation{first, second}, time.Now())
	require.NotNil(t, near)
	assert.Equal(t, first.ID, near.ID)
}

func TestDetector_Evaluate_CooldownSuppressesRepeat(t *testing.T) {
	d := newDetector(50, 300*time.Second)
	store := entity.NewAlertLocation("Grocery", baseLat+latStep, baseLng, "buy milk")
	snapshot := []*entity.AlertLocation{store}
	start := time.Now()

	// First sighting notifies.
	near, fired := d.Evaluate(baseLat, baseLng, snapshot, start)
	require.NotNil(t, near)
	require.NotNil(t, fired)

	// Still near one minute later: presence reported, notification suppressed.
	near, fired = d.Evaluate(baseLat, baseLng, snapshot, start.Add(60*time.Second))
	require.NotNil(t, near)
	assert.Nil(t, fired)

	// Past the cooldown window the alert fires again.
	near, fired = d.Evaluate(baseLat, baseLng, snapshot, start.Add(400*time.Second))
	require.NotNil(t, near)
	require.NotNil(t, fired)
}

func TestDetector_Evaluate_ZeroCooldownAlwaysFires(t *testing.T) {
	d := newDetector(50, 0)
	store := entity.NewAlertLocation("Grocery", baseLat+latStep, baseLng, "")
	snapshot := []*entity.AlertLocation{store}
	start := time.Now()

	_, fired := d.Evaluate(baseLat, baseLng, snapshot, start)
	require.NotNil(t, fired)

	_, fired = d.Evaluate(baseLat, baseLng, snapshot, start.Add(time.Second))
	require.NotNil(t, fired)
}

func TestDetector_Forget_ResetsCooldown(t *testing.T) {
	d := newDetector(50, 300*time.Second)
	store := entity.NewAlertLocation("Grocery", baseLat+latStep, baseLng, "")
	snapshot := []*entity.AlertLocation{store}
	start := time.Now()

	_, fired := d.Evaluate(baseLat, baseLng, snapshot, start)
	require.NotNil(t, fired)

	d.Forget(store.ID)

	// With the debounce entry gone the next sighting fires immediately.
	_, fired = d.Evaluate(baseLat, baseLng, snapshot, start.Add(time.Second))
	require.NotNil(t, fired)
}

func TestDetector_TriggerIfDue(t *testing.T) {
	d := newDetector(50, 300*time.Second)
	store := entity.NewAlertLocation("Grocery", baseLat, baseLng, "")
	start := time.Now()

	assert.True(t, d.TriggerIfDue(store.ID, start))
	assert.False(t, d.TriggerIfDue(store.ID, start.Add(60*time.Second)))
	assert.True(t, d.TriggerIfDue(store.ID, start.Add(400*time.Second)))
}
