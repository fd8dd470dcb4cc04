package enrollment

import "errors"

var (
	// ErrValidation is returned when required input is missing.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when no enrollment or task matches.
	ErrNotFound = errors.New("not found")
	// ErrPersistence is returned when the record set could not be saved.
	// The in-memory change is kept.
	ErrPersistence = errors.New("persistence error")
	// ErrCollaboratorUnavailable marks catalog or ledger failures. It is
	// only logged; callers never receive it.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)
