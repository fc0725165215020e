package services

import "errors"

// Error taxonomy shared by all services. Callers match with errors.Is;
// services wrap these with context via fmt.Errorf("%w: ...").
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	ErrCyclicBOM         = errors.New("cyclic bill of materials")
	ErrValidation        = errors.New("validation failed")
	ErrNoData            = errors.New("insufficient data")
)
