// Package repository defines the persistence boundaries of the domain.
package repository

import (
	"context"

	"spotalert/internal/domain/entity"
)

// LocationRepository is the persistence gateway for the saved-location set.
// Save always writes the whole set; Load returns it in the order it was
// saved, which is the registry's insertion order. An empty store loads as an
// empty slice, not an error.
type LocationRepository interface {
	Load(ctx context.Context) ([]*entity.AlertLocation, error)
	Save(ctx context.Context, locations []*entity.AlertLocation) error
}
