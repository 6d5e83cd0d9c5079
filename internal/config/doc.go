// Package config provides configuration loading, merging, and validation
// facilities for the origin server and the puller.
//
// Configuration is assembled from multiple sources. Earlier sources take
// precedence over later ones for every non-zero field:
//  1. Command-line flags (or CLI overrides on the puller)
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetServerConfig] for the origin and
// [GetClientConfig] for the puller.
package config
