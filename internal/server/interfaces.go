package server

import "context"

type Server interface {
	// Run serves until ctx is cancelled or a listener fails, then shuts every
	// transport down gracefully.
	Run(ctx context.Context) error
}

// transport is one listener managed by the server.
type transport interface {
	serve() error
	shutdown(ctx context.Context) error
}
