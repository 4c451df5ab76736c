// Package delivery defines the serving surfaces of the application.
package delivery

import "context"

// Delivery is a long-running serving surface (HTTP server, worker).
type Delivery interface {
	Serve(ctx context.Context) error
}
