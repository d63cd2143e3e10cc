// Package constants provides shared constant values used throughout the application.
//
// The timeouts.go file defines timeout durations for server and database
// operations.
package constants

import "time"

const (
	// DefaultReadTimeout is the maximum duration for reading a request.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration for writing a response.
	// Batch ingest and enrichment requests can carry thousands of records,
	// so this is deliberately generous.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum duration to keep idle connections open.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout is how long graceful shutdown waits for in-flight
	// requests before forcing the server to stop.
	DefaultShutdownTimeout = 10 * time.Second

	// DBConnectTimeout bounds the initial database connection attempt.
	DBConnectTimeout = 10 * time.Second

	// DBHealthCheckTimeout bounds a single health check round-trip.
	DBHealthCheckTimeout = 5 * time.Second
)
