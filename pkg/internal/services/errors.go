package services

import "fmt"

// All validation runs before the first mutating storage call; once a
// transaction starts, the only failures left are storage failures, which roll
// the whole thing back. The types below carry the failure class across the
// service boundary so the HTTP layer can map them in one place.

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s was not found", e.Resource)
}

type ConflictError struct {
	Resource string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Resource)
}
