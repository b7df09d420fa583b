// Package workers runs the application's scheduled background jobs.
//
// Each job implements Worker; the Workers aggregate starts and stops them as
// a unit alongside the HTTP server.
package workers

// Worker is a background job with an explicit lifecycle.
//
// Start must not block. Stop blocks until any in-progress run has finished.
type Worker interface {
	Start() error
	Stop()
}
