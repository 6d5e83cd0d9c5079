// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks requests that arrive from outside the process
// before they reach the services.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Usage patterns:
//  1. Build a Validator for the configured set of logical roots.
//  2. Inject it into the service validation wrappers.
//  3. Call Validate with context, value, and optional field names.
//
// Path safety of individual files is not checked here. That is the job of the
// tree storage, which resolves every path against the real root directory.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
