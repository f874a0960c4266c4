package utils

import "fmt"

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ValidationError reports a bad or missing request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// SlotTakenError reports booking contention on a provider slot.
type SlotTakenError struct {
	ProviderEmail string
	Date          string
	Slot          string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("slot %s %s already booked for %s", e.Date, e.Slot, e.ProviderEmail)
}

// PersistenceError wraps a failed backend write or query so callers can
// surface it instead of swallowing it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IdentityError reports a malformed or missing participant identifier.
// It is fatal to the operation, never silently degraded.
type IdentityError struct {
	Reason string
}

func (e *IdentityError) Error() string {
	return "identity error: " + e.Reason
}
