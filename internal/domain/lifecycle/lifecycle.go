// Package lifecycle holds shared shutdown parameters.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of every delivery.
const DefaultTimeout = 10 * time.Second
