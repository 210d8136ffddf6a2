// Package delivery defines the contract shared by every long-running
// entrypoint of the service, HTTP and background workers alike.
package delivery

import "context"

// Delivery is a server started once at boot and stopped through its fx
// lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
