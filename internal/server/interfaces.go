package server

import "context"

// Server defines the lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts the
	// server down gracefully. It returns early if the listener fails.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server within ctx's deadline.
	Shutdown(ctx context.Context) error
}
