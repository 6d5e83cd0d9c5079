// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-tree-sync/internal/service"
)

// ErrNotInteractive is returned by Confirm when stdin is not a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// humanizeError turns a classified pull error into a line for the summary.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrAuthentication):
		return "origin rejected the token (check APP_TOKEN): " + err.Error()
	case errors.Is(err, service.ErrTargetLocked):
		return "another pull is working on this target: " + err.Error()
	case errors.Is(err, service.ErrCancelled):
		return "cancelled, target left unchanged"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") {
		return "origin unreachable: " + err.Error()
	}

	return err.Error()
}
