package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"spotalert/config"
	"spotalert/internal/domain/entity"
	domainerrors "spotalert/internal/domain/errors"
	"spotalert/internal/domain/lifecycle"
	"spotalert/internal/domain/repository"
	"spotalert/internal/domain/service"
	"spotalert/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Engine is the proximity alert core: it owns the registry of monitored
// locations and the detector's debounce state behind a single mutex, and
// drains the geofence provider's event channel on one goroutine. Mutations
// arrive from user-driven handlers, position and region events from the
// provider; both paths serialize on the same lock. Gateway writes and info
// notifications happen off the mutation path: the lock is never held across
// network or disk I/O.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	repo     repository.LocationRepository
	provider service.GeofenceProvider

	detector   *detector
	dispatcher *dispatcher

	mu        sync.Mutex
	locations []*entity.AlertLocation
	index     map[uuid.UUID]*entity.AlertLocation

	// persistCh hands mutation snapshots to the run goroutine. Capacity one
	// with latest-wins replacement: mutations never wait on the gateway.
	persistCh chan []*entity.AlertLocation

	cancel context.CancelFunc
}

// EngineParams holds dependencies for the Engine, injected by Fx.
type EngineParams struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	Logger    *slog.Logger
	Repo      repository.LocationRepository
	Provider  service.GeofenceProvider
	Notifier  service.Notifier
	Publisher service.EventPublisher
}

// NewEngine creates the proximity alert engine and hooks its run loop into
// the application lifecycle.
func NewEngine(params EngineParams) *Engine {
	engine := &Engine{
		cfg:        params.Config,
		logger:     params.Logger,
		repo:       params.Repo,
		provider:   params.Provider,
		detector:   newDetector(params.Config.Proximity.RadiusMeters, *params.Config.Proximity.Cooldown),
		dispatcher: newDispatcher(params.Notifier, params.Publisher, params.Logger),
		index:      make(map[uuid.UUID]*entity.AlertLocation),
		persistCh:  make(chan []*entity.AlertLocation, 1),
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancelLoad := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancelLoad()
			engine.restore(ctx)

			runCtx, cancel := context.WithCancel(context.Background())
			engine.cancel = cancel
			go engine.run(runCtx)

			return nil
		},
		OnStop: func(context.Context) error {
			if engine.cancel != nil {
				engine.cancel()
			}

			return nil
		},
	})

	return engine
}

// NewRegistryUsecase exposes the engine's registry surface.
func NewRegistryUsecase(engine *Engine) usecase.RegistryUsecase {
	return engine
}

// NewProximityUsecase exposes the engine's status surface.
func NewProximityUsecase(engine *Engine) usecase.ProximityUsecase {
	return engine
}

// restore loads the saved set from the persistence gateway. A load failure
// is logged and the session starts empty; it never aborts startup.
func (e *Engine) restore(ctx context.Context) {
	locations, err := e.repo.Load(ctx)
	if err != nil {
		e.logger.Error("failed to load saved locations, starting empty", slog.Any("error", err))

		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, loc := range locations {
		if _, ok := e.index[loc.ID]; ok {
			continue
		}
		e.locations = append(e.locations, loc)
		e.index[loc.ID] = loc
		e.startMonitoringLocked(loc)
	}

	e.logger.Info("restored saved locations", slog.Int("count", len(e.locations)))
}

// Add inserts a location, registers its geofence region and persists the
// set. Re-adding an already-present ID is a no-op.
func (e *Engine) Add(ctx context.Context, location *entity.AlertLocation) error {
	e.mu.Lock()
	if _, ok := e.index[location.ID]; ok {
		e.mu.Unlock()
		e.logger.Debug("location already saved", slog.String("id", location.ID.String()))

		return nil
	}

	e.locations = append(e.locations, location)
	e.index[location.ID] = location
	e.startMonitoringLocked(location)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.queuePersist(snapshot)
	go e.dispatcher.NotifyInfo(context.WithoutCancel(ctx), "Location Saved", location.Name)

	return nil
}

// Remove deletes a location, deregisters its region and clears its debounce
// entry. Removing an absent ID returns without error.
func (e *Engine) Remove(ctx context.Context, id uuid.UUID) error {
	e.mu.Lock()
	removed, ok := e.index[id]
	if !ok {
		e.mu.Unlock()

		return nil
	}

	delete(e.index, id)
	for i, loc := range e.locations {
		if loc.ID == id {
			e.locations = append(e.locations[:i], e.locations[i+1:]...)

			break
		}
	}

	if err := e.provider.StopMonitoring(id); err != nil {
		e.logger.Error("failed to stop monitoring region",
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
	}
	e.detector.Forget(id)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.dispatcher.ClearFor(id)
	e.queuePersist(snapshot)
	go e.dispatcher.NotifyInfo(context.WithoutCancel(ctx), "Location Removed", removed.Name)

	return nil
}

// UpdateReminder replaces the reminder note of a saved location, preserving
// its identity, name and coordinate.
func (e *Engine) UpdateReminder(ctx context.Context, id uuid.UUID, reminder string) (*entity.AlertLocation, error) {
	e.mu.Lock()
	current, ok := e.index[id]
	if !ok {
		e.mu.Unlock()

		return nil, domainerrors.ErrLocationNotFound
	}

	updated := *current
	updated.Reminder = reminder
	updated.UpdatedAt = time.Now()
	e.index[id] = &updated
	for i, loc := range e.locations {
		if loc.ID == id {
			e.locations[i] = &updated

			break
		}
	}
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.queuePersist(snapshot)
	go e.dispatcher.NotifyInfo(context.WithoutCancel(ctx), "Reminder Updated", updated.Name)

	return &updated, nil
}

// Locations returns a snapshot of the saved set in insertion order.
func (e *Engine) Locations() []*entity.AlertLocation {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshotLocked()
}

// Find returns a saved location by ID.
func (e *Engine) Find(id uuid.UUID) (*entity.AlertLocation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	loc, ok := e.index[id]

	return loc, ok
}

// CurrentAlert returns the current "near X" status message.
func (e *Engine) CurrentAlert() (string, bool) {
	return e.dispatcher.CurrentAlert()
}

// run drains the provider's event channel and pending persistence snapshots
// until the engine stops.
func (e *Engine) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			e.flushPersist()

			return
		case event, ok := <-e.provider.Events():
			if !ok {
				e.flushPersist()

				return
			}
			e.handleEvent(ctx, event)
		case snapshot := <-e.persistCh:
			e.persist(ctx, snapshot)
		}
	}
}

func (e *Engine) handleEvent(ctx context.Context, event service.ProviderEvent) {
	switch {
	case event.Position != nil:
		e.HandlePosition(ctx, event.Position.Latitude, event.Position.Longitude, event.Position.At)
	case event.Region != nil:
		e.handleRegionEvent(ctx, event.Region)
	}
}

// HandlePosition evaluates a live position against the registry and applies
// the dispatch policy.
func (e *Engine) HandlePosition(ctx context.Context, latitude, longitude float64, at time.Time) {
	e.mu.Lock()
	near, fired := e.detector.Evaluate(latitude, longitude, e.locations, at)
	e.mu.Unlock()

	e.dispatcher.DispatchProximity(ctx, near, fired)
}

// handleRegionEvent applies a boundary crossing. Late events referencing a
// removed location are discarded.
func (e *Engine) handleRegionEvent(ctx context.Context, event *service.RegionEvent) {
	e.mu.Lock()
	loc, ok := e.index[event.LocationID]
	var fired *entity.AlertLocation
	if ok && event.Kind == service.RegionEnter && e.detector.TriggerIfDue(loc.ID, event.At) {
		fired = loc
	}
	e.mu.Unlock()

	if !ok {
		e.logger.Debug("discarding event for removed location",
			slog.String("id", event.LocationID.String()),
		)

		return
	}

	switch event.Kind {
	case service.RegionEnter:
		e.dispatcher.DispatchProximity(ctx, loc, fired)
	case service.RegionExit:
		e.dispatcher.ClearFor(loc.ID)
	}
}

func (e *Engine) startMonitoringLocked(location *entity.AlertLocation) {
	region := location.Region(e.cfg.Proximity.RadiusMeters)
	if err := e.provider.StartMonitoring(region); err != nil {
		e.logger.Error("failed to start monitoring region",
			slog.String("id", location.ID.String()),
			slog.Any("error", err),
		)
	}
}

// queuePersist hands a mutation snapshot to the run goroutine without
// blocking. An unconsumed older snapshot is replaced; each snapshot is the
// whole set, so the latest one always supersedes.
func (e *Engine) queuePersist(snapshot []*entity.AlertLocation) {
	for {
		select {
		case e.persistCh <- snapshot:
			return
		default:
			select {
			case <-e.persistCh:
			default:
			}
		}
	}
}

// persist writes a snapshot through the gateway. Failure is logged; the
// in-memory registry stays authoritative for the session.
func (e *Engine) persist(ctx context.Context, snapshot []*entity.AlertLocation) {
	if err := e.repo.Save(ctx, snapshot); err != nil {
		e.logger.Error("failed to persist locations, in-memory set remains authoritative",
			slog.Any("error", err),
		)
	}
}

// flushPersist writes any still-queued snapshot before the run goroutine
// exits, on its own deadline since the run context is already done.
func (e *Engine) flushPersist() {
	select {
	case snapshot := <-e.persistCh:
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()
		e.persist(ctx, snapshot)
	default:
	}
}

func (e *Engine) snapshotLocked() []*entity.AlertLocation {
	snapshot := make([]*entity.AlertLocation, len(e.locations))
	copy(snapshot, e.locations)

	return snapshot
}
