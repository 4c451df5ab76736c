package entity

import "github.com/google/uuid"

// GeofenceRegion is the circular monitoring area derived from an AlertLocation.
// It is never persisted; the region identifier equals the location ID.
type GeofenceRegion struct {
	LocationID   uuid.UUID `json:"location_id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusMeters float64   `json:"radius_meters"`
}
