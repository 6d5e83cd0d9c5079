// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoHTTPHandler   = errors.New("origin has no http handler to serve")
	errNoListenAddress = errors.New("origin listen address is empty")
)
