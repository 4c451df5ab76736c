// Package usecase defines the application's use case boundaries.
package usecase

import (
	"context"

	"spotalert/internal/domain/entity"

	"github.com/google/uuid"
)

// RegistryUsecase manages the authoritative set of monitored alert locations
// and the lifecycle of their geofence regions.
type RegistryUsecase interface {
	// Add inserts a location and registers its monitoring region. Adding a
	// location whose ID is already present is a no-op.
	Add(ctx context.Context, location *entity.AlertLocation) error

	// Remove deletes a location, deregisters its region and clears its
	// debounce state. Removing an absent ID is a no-op.
	Remove(ctx context.Context, id uuid.UUID) error

	// UpdateReminder replaces a location's reminder note in place,
	// preserving identity, name and coordinate.
	UpdateReminder(ctx context.Context, id uuid.UUID, reminder string) (*entity.AlertLocation, error)

	// Locations returns a snapshot of the saved set in insertion order.
	Locations() []*entity.AlertLocation

	// Find returns a saved location by ID.
	Find(id uuid.UUID) (*entity.AlertLocation, bool)
}
