package services

import "errors"

var (
	// ErrNotFound is returned when a conversation or workspace does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a conversation belongs to another workspace
	ErrForbidden = errors.New("forbidden")
	// ErrQuotaExceeded is returned when the workspace usage limit is reached
	ErrQuotaExceeded = errors.New("usage quota exceeded")
)
