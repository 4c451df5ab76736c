// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertLocation is a saved point of interest the user wants to be notified
// near. Identity is carried by ID alone: Name, Reminder and the coordinate may
// be edited in place without changing which monitored entity this is.
type AlertLocation struct {
	ID        uuid.UUID `json:"id"`         // The unique identifier, generated at creation, never reused.
	Name      string    `json:"name"`       // Display label, e.g., "Home", "Karaportti 2, Espoo".
	Latitude  float64   `json:"latitude"`   // The geographic latitude (WGS-84 degrees).
	Longitude float64   `json:"longitude"`  // The geographic longitude (WGS-84 degrees).
	Reminder  string    `json:"reminder"`   // Optional free-text note, empty if absent.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this location was saved.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}

// NewAlertLocation creates a location with a fresh identity.
func NewAlertLocation(name string, latitude, longitude float64, reminder string) *AlertLocation {
	now := time.Now()

	return &AlertLocation{
		ID:        uuid.New(),
		Name:      name,
		Latitude:  latitude,
		Longitude: longitude,
		Reminder:  reminder,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Region derives the circular monitoring region for this location.
func (l *AlertLocation) Region(radiusMeters float64) GeofenceRegion {
	return GeofenceRegion{
		LocationID:   l.ID,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		RadiusMeters: radiusMeters,
	}
}
