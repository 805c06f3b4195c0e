package models

import "errors"

// Sentinel errors wrapped by repositories and services so that outer
// adapters (HTTP, CLI) can classify failures with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("already exists")
	ErrInvalid   = errors.New("invalid input")
	ErrForbidden = errors.New("forbidden")
)
