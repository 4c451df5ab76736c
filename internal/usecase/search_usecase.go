package usecase

import (
	"context"

	"spotalert/internal/domain/entity"
)

// SearchUsecase is the search-and-save flow: resolve a free-text address
// query through the geocoding collaborator and save the result as an alert
// location.
type SearchUsecase interface {
	SaveByQuery(ctx context.Context, query, reminder string) (*entity.AlertLocation, error)
}
