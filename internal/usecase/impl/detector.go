package impl

import (
	"time"

	"spotalert/internal/domain/entity"
	"spotalert/internal/util"

	"github.com/google/uuid"
)

// detector holds the proximity policy: nearest-wins selection within the
// proximity radius, and a per-location cooldown that suppresses repeat
// notifications while still reporting presence. Not safe for concurrent use;
// the engine serializes access.
type detector struct {
	radiusMeters  float64
	cooldown      time.Duration
	lastTriggered map[uuid.UUID]time.Time
}

func newDetector(radiusMeters float64, cooldown time.Duration) *detector {
	return &detector{
		radiusMeters:  radiusMeters,
		cooldown:      cooldown,
		lastTriggered: make(map[uuid.UUID]time.Time),
	}
}

// Evaluate computes the nearest in-range location for the given position.
// near is the location the user is currently near, nil when none qualifies.
// fired is near when the cooldown permits a notification, nil when the alert
// is suppressed. Ties on exact distance go to the earliest registry entry.
func (d *detector) Evaluate(latitude, longitude float64, snapshot []*entity.AlertLocation, now time.Time) (near, fired *entity.AlertLocation) {
	if len(snapshot) == 0 {
		return nil, nil
	}

	bestDistance := d.radiusMeters
	for _, loc := range snapshot {
		dist := util.DistanceMeters(latitude, longitude, loc.Latitude, loc.Longitude)
		if dist > d.radiusMeters {
			continue
		}
		// Strict comparison keeps the earliest entry on equal distance.
		if near == nil || dist < bestDistance {
			near = loc
			bestDistance = dist
		}
	}

	if near == nil {
		return nil, nil
	}

	if d.TriggerIfDue(near.ID, now) {
		fired = near
	}

	return near, fired
}

// TriggerIfDue records a trigger for the location unless it fired within the
// cooldown window. Returns whether a notification should go out.
func (d *detector) TriggerIfDue(id uuid.UUID, now time.Time) bool {
	if last, ok := d.lastTriggered[id]; ok && d.cooldown > 0 && now.Sub(last) < d.cooldown {
		return false
	}

	d.lastTriggered[id] = now

	return true
}

// Forget clears the debounce entry for a removed location.
func (d *detector) Forget(id uuid.UUID) {
	delete(d.lastTriggered, id)
}
