// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the puller command line application.
//
// It wires configuration, the origin adapter, the pull service and the
// terminal UI into the "sync pull" command, and maps the outcome of a run to
// the process exit code.
package client
