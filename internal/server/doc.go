// Package server runs the origin's HTTP server.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown that lets in-flight archive streams finish within a grace period.
package server
