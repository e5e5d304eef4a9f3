// Package server runs the transports of the accounts server.
//
// It starts the HTTP API, the optional gRPC health endpoint and the
// background workers, then on SIGTERM, SIGINT or SIGQUIT drains the
// transports and waits for the workers to stop.
package server
