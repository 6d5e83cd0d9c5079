// Package http implements the origin's HTTP transport.
//
// It mounts the sync routes under the configured prefix and wraps them with
// access control (shared bearer token, source-address allow-list), request
// tracing, access logging and manifest compression before delegating to the
// origin service.
package http
