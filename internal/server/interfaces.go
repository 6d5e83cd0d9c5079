package server

// Server defines the lifecycle of the origin's transport.
//
// RunServer blocks until a stop signal arrives or the listener fails, then
// returns after in-flight requests have drained. Shutdown stops the server
// from outside RunServer.
type Server interface {
	RunServer() error
	Shutdown()
}
