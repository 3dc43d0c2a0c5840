package model

import "errors"

// Sentinel errors shared by stores and handlers.
var (
	ErrInvalid           = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)
