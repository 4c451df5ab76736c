package impl

import (
	"context"
	"fmt"
	"log/slog"

	"spotalert/internal/domain/entity"
	domainerrors "spotalert/internal/domain/errors"
	"spotalert/internal/domain/service"
	"spotalert/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type searchService struct {
	registry usecase.RegistryUsecase
	geocoder service.Geocoder
	notifier service.Notifier
	logger   *slog.Logger
}

// SearchServiceParams holds dependencies for SearchService, injected by Fx.
type SearchServiceParams struct {
	fx.In

	Registry usecase.RegistryUsecase
	Geocoder service.Geocoder
	Notifier service.Notifier
	Logger   *slog.Logger
}

// NewSearchService creates the search-and-save service.
func NewSearchService(params SearchServiceParams) usecase.SearchUsecase {
	return &searchService{
		registry: params.Registry,
		geocoder: params.Geocoder,
		notifier: params.Notifier,
		logger:   params.Logger,
	}
}

// SaveByQuery resolves a free-text query and saves the result as an alert
// location. A query with no match surfaces as ErrGeocodeNoMatch and a
// best-effort "not found" notification.
func (s *searchService) SaveByQuery(ctx context.Context, query, reminder string) (*entity.AlertLocation, error) {
	result, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, service.ErrNoMatch) {
			if notifyErr := s.notifier.Notify(ctx, "SpotAlert", fmt.Sprintf("No location found for %q", query), nil); notifyErr != nil {
				s.logger.Error("failed to deliver not-found notification", slog.Any("error", notifyErr))
			}

			return nil, domainerrors.ErrGeocodeNoMatch
		}

		return nil, errors.Wrap(err, "failed to resolve query")
	}

	location := entity.NewAlertLocation(result.DisplayName, result.Latitude, result.Longitude, reminder)
	if err := s.registry.Add(ctx, location); err != nil {
		return nil, errors.Wrap(err, "failed to save resolved location")
	}

	return location, nil
}
