package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"spotalert/internal/domain/entity"
	"spotalert/internal/domain/service"

	"github.com/google/uuid"
)

const alertTitle = "SpotAlert Proximity Alert"

// dispatcher turns detector decisions into notification requests and the
// process-wide "current alert" status consumed by presentation. Notification
// and event-publishing failures are logged, never retried.
type dispatcher struct {
	notifier  service.Notifier
	publisher service.EventPublisher
	logger    *slog.Logger

	mu       sync.Mutex
	status   string
	statusID uuid.UUID
}

func newDispatcher(notifier service.Notifier, publisher service.EventPublisher, logger *slog.Logger) *dispatcher {
	return &dispatcher{
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// DispatchProximity applies a detector result: near drives the status
// signal, fired (nil while the cooldown suppresses) drives the notification.
func (d *dispatcher) DispatchProximity(ctx context.Context, near, fired *entity.AlertLocation) {
	if near == nil {
		d.clearStatus()

		return
	}

	d.setStatus(near.ID, fmt.Sprintf("You are near %s", near.Name))

	if fired == nil {
		return
	}

	body := fmt.Sprintf("You are near %s", fired.Name)
	if fired.Reminder != "" {
		body = fmt.Sprintf("%s. Reminder: %s", body, fired.Reminder)
	}

	if err := d.notifier.Notify(ctx, alertTitle, body, map[string]string{
		"location_id": fired.ID.String(),
	}); err != nil {
		d.logger.Error("failed to deliver proximity notification",
			slog.String("location_id", fired.ID.String()),
			slog.Any("error", err),
		)
	}

	if err := d.publisher.PublishAlertEvent(ctx, &service.AlertEvent{
		LocationID: fired.ID.String(),
		Name:       fired.Name,
		Latitude:   fired.Latitude,
		Longitude:  fired.Longitude,
		Reminder:   fired.Reminder,
		FiredAt:    time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		d.logger.Error("failed to publish alert event",
			slog.String("location_id", fired.ID.String()),
			slog.Any("error", err),
		)
	}
}

// NotifyInfo sends a best-effort informational notification for registry
// mutations. Never debounced.
func (d *dispatcher) NotifyInfo(ctx context.Context, title, body string) {
	if err := d.notifier.Notify(ctx, title, body, nil); err != nil {
		d.logger.Error("failed to deliver informational notification",
			slog.String("title", title),
			slog.Any("error", err),
		)
	}
}

// ClearFor drops the status if it currently points at the given location.
func (d *dispatcher) ClearFor(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.statusID == id {
		d.status = ""
		d.statusID = uuid.Nil
	}
}

// CurrentAlert returns the current "near X" status message.
func (d *dispatcher) CurrentAlert() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.status, d.status != ""
}

func (d *dispatcher) setStatus(id uuid.UUID, status string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.status = status
	d.statusID = id
}

func (d *dispatcher) clearStatus() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.status = ""
	d.statusID = uuid.Nil
}
