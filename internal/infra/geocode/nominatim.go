// Package geocode implements the forward-geocoding collaborator over a
// Nominatim-compatible search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spotalert/config"
	domainerrors "spotalert/internal/domain/errors"
	"spotalert/internal/domain/service"
	"spotalert/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultTimeout = 5 * time.Second

type nominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

// Params holds dependencies for the geocoder, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New creates a Geocoder backed by the configured search endpoint.
func New(params Params) (service.Geocoder, error) {
	cfg := params.Config.Geocoder
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("geocoder base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &nominatimGeocoder{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
		logger:    params.Logger,
	}, nil
}

// searchResult mirrors the subset of the Nominatim response we consume.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up the best coordinate for a free-text query. A query with no
// hits returns service.ErrNoMatch.
func (g *nominatimGeocoder) Resolve(ctx context.Context, query string) (*service.GeocodeResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "geocode request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.Wrap(err, "failed to decode geocode response")
	}

	if len(results) == 0 {
		g.logger.Debug("geocode query had no match", slog.String("query", query))

		return nil, service.ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid latitude in geocode response")
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid longitude in geocode response")
	}

	if !util.ValidCoordinate(lat, lon) {
		return nil, domainerrors.ErrInvalidCoordinate.WithDetails(
			fmt.Sprintf("upstream returned %f,%f for %q", lat, lon, query),
		)
	}

	return &service.GeocodeResult{
		DisplayName: results[0].DisplayName,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}
