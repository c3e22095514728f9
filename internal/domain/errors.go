package domain

import "errors"

var (
	// ErrInvalidRequest marks requests rejected before any producer runs.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUpstream marks producer failures.
	ErrUpstream = errors.New("upstream error")

	// ErrTransport marks a caller that went away while a stream was being written.
	ErrTransport = errors.New("transport error")
)
