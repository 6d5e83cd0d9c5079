// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the access middleware. Every one of them is
// reported to the caller as 403 Forbidden.
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the bearer scheme is present but the
	// token value is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrInvalidToken is returned when the token does not match the shared
	// secret, or when the origin has no secret configured.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAddressNotAllowed is returned when the source address is outside the
	// configured allow-list.
	ErrAddressNotAllowed = errors.New("source address is not allowed")
)
