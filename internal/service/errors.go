package service

import "errors"

// Failure taxonomy. Every error a pull pipeline reports wraps exactly one of
// the first seven values, so callers can branch with errors.Is.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrAuthentication = errors.New("origin rejected credentials")
	ErrTransport      = errors.New("transport failure")
	ErrArchive        = errors.New("archive failure")
	ErrFilesystem     = errors.New("filesystem failure")
	ErrCancelled      = errors.New("cancelled")
	ErrTargetLocked   = errors.New("target is locked")
)

// Origin request errors.
var (
	ErrUnknownRoot      = errors.New("unknown root")
	ErrNoFilesRequested = errors.New("no files requested")
	ErrNoValidFiles     = errors.New("no requested file could be resolved")
	ErrRootNotFound     = errors.New("root directory not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrInvalidRequest   = errors.New("invalid request")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
