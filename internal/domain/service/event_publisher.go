package service

import (
	"context"
)

// AlertEvent represents a fired proximity alert published for downstream
// consumers (companion devices, automation hooks).
type AlertEvent struct {
	RequestID  string  `json:"request_id,omitempty"` // For distributed tracing
	LocationID string  `json:"location_id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Reminder   string  `json:"reminder,omitempty"`
	FiredAt    string  `json:"fired_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAlertEvent publishes a fired proximity alert for async processing
	PublishAlertEvent(ctx context.Context, event *AlertEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
