package server

// Server is the lifecycle contract of a transport managed by this package.
type Server interface {
	// RunServer serves until shutdown is requested.
	RunServer()

	// Shutdown stops accepting work and waits for in-flight calls.
	Shutdown()
}
