// Package blob implements the persistence gateway over a gocloud.dev bucket:
// the whole location set is serialized to a single opaque JSON object.
package blob

import (
	"context"
	"encoding/json"
	"log/slog"

	"spotalert/config"
	"spotalert/internal/domain/entity"
	"spotalert/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

const defaultKey = "locations.json"

// storedLocation is the wire form of an AlertLocation. Round-trip of the four
// logical fields must be lossless; order in the array is insertion order.
type storedLocation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Reminder  string  `json:"reminder"`
}

type store struct {
	bucket *blob.Bucket
	key    string
}

// Params holds dependencies for the blob store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and returns the location repository.
func New(params Params) (repository.LocationRepository, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.Bucket == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.Bucket)
	}

	key := cfg.Key
	if key == "" {
		key = defaultKey
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Blob persistence gateway initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("key", key),
	)

	return NewStore(bucket, key), nil
}

// NewStore wraps an already-open bucket. Used directly in tests.
func NewStore(bucket *blob.Bucket, key string) repository.LocationRepository {
	return &store{bucket: bucket, key: key}
}

// Load reads the stored set. A missing object is an empty set.
func (s *store) Load(ctx context.Context) ([]*entity.AlertLocation, error) {
	raw, err := s.bucket.ReadAll(ctx, s.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return []*entity.AlertLocation{}, nil
		}

		return nil, errors.Wrap(err, "failed to read locations blob")
	}

	var stored []storedLocation
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, errors.Wrap(err, "failed to decode locations blob")
	}

	locations := make([]*entity.AlertLocation, 0, len(stored))
	for _, rec := range stored {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid location id %q in store", rec.ID)
		}

		locations = append(locations, &entity.AlertLocation{
			ID:        id,
			Name:      rec.Name,
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			Reminder:  rec.Reminder,
		})
	}

	return locations, nil
}

// Save writes the whole set, replacing the previous blob.
func (s *store) Save(ctx context.Context, locations []*entity.AlertLocation) error {
	stored := make([]storedLocation, 0, len(locations))
	for _, loc := range locations {
		stored = append(stored, storedLocation{
			ID:        loc.ID.String(),
			Name:      loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Reminder:  loc.Reminder,
		})
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "failed to encode locations")
	}

	if err := s.bucket.WriteAll(ctx, s.key, raw, nil); err != nil {
		return errors.Wrap(err, "failed to write locations blob")
	}

	return nil
}
