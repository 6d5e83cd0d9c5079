package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid. Every one of them maps to exit code 2 in the CLI.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid origin settings
	// (for example, a malformed allow-list entry).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates invalid puller transport settings
	// (for example, a missing remote or a zero timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid root or scratch directory
	// settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid parallelism settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
