package adapter

import "errors"

var (
	ErrBadRequest         = errors.New("bad request")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrUnexpectedStatus   = errors.New("unexpected status")
	ErrIncompleteTransfer = errors.New("incomplete transfer")
	ErrRequestFailed      = errors.New("request failed")
	ErrInvalidResponse    = errors.New("invalid response")
)
