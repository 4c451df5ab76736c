// Package lifecycle holds shared lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup/shutdown steps.
const DefaultTimeout = 10 * time.Second
