package services

import (
	"errors"
)

// Core error taxonomy. Controllers map these to HTTP statuses with errors.Is;
// anything else is a storage failure and surfaces as a 500.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("invalid input")
)
