package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// CurrencyInconsistencyError is fatal to any balance or currency query on the
// booking. It is surfaced to the caller and never auto-resolved.
type CurrencyInconsistencyError struct {
	BookingID int64
}

func (e CurrencyInconsistencyError) Error() string {
	return fmt.Sprintf("different currencies in booking %d", e.BookingID)
}

// NotCancellableError reports the exact item a cancellation cascade stopped on.
type NotCancellableError struct {
	Kind   string
	ItemID int64
	Status string
}

func (e NotCancellableError) Error() string {
	return fmt.Sprintf("%s %d is not cancellable in status %q", e.Kind, e.ItemID, e.Status)
}

// IntegrityError marks unrecoverable cross-entity violations, e.g. an order
// batch resolving to more than one booking.
type IntegrityError struct {
	Msg string
}

func (e IntegrityError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "integrity violation"
}

// PricingError wraps a failure from the external pricing collaborator. The
// core never retries; retry policy belongs to the caller.
type PricingError struct {
	Err error
}

func (e PricingError) Error() string {
	if e.Err != nil {
		return "pricing service failed: " + e.Err.Error()
	}
	return "pricing service failed"
}

func (e PricingError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsCurrencyInconsistency(err error) bool {
	var target CurrencyInconsistencyError
	return errors.As(err, &target)
}

func IsNotCancellable(err error) bool {
	var target NotCancellableError
	return errors.As(err, &target)
}

func IsIntegrity(err error) bool {
	var target IntegrityError
	return errors.As(err, &target)
}

func IsPricing(err error) bool {
	var target PricingError
	return errors.As(err, &target)
}
