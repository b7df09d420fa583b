package server

// Server defines the lifecycle contract for the process-level server.
//
// Implementations block in [RunServer] until shutdown is requested and
// release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

// Background is a set of jobs that run for as long as the server does.
type Background interface {
	Start() error
	Stop()
}
