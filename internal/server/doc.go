// Package server runs the application's transport servers.
//
// Every enabled transport (HTTP, gRPC) is served in its own errgroup
// goroutine. Cancelling the context passed to Run, usually the one returned
// by NotifyContext, drains all of them within a bounded shutdown window.
package server
