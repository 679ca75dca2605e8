// Package errdefs defines the typed failure taxonomy shared by the
// marketplace engine, the balance ledger, and the operation dispatch table.
package errdefs

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a required record was absent from state.
type NotFoundError struct {
	// Kind names the record type, e.g. "listing" or "document".
	Kind string
	// Key is the state key that was looked up.
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Kind, e.Key)
}

// IsNotFound checks if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// InsufficientFundsError indicates a party balance below the required amount.
type InsufficientFundsError struct {
	Party   string
	Balance uint64
	Needed  uint64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient funds for %s: have %d, need %d",
		e.Party, e.Balance, e.Needed,
	)
}

// IsInsufficientFunds checks if the error is an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var e *InsufficientFundsError
	return errors.As(err, &e)
}

// IntegrityMismatchError indicates a recomputed digest disagreed with the
// stored digest.
type IntegrityMismatchError struct {
	// Key is the document or listing the digest belongs to.
	Key string
	// Want is the digest recorded in state.
	Want string
	// Got is the digest recomputed from the data.
	Got string
}

func (e *IntegrityMismatchError) Error() string {
	return fmt.Sprintf("integrity mismatch for %s: want %s, got %s", e.Key, e.Want, e.Got)
}

// IsIntegrityMismatch checks if the error is an IntegrityMismatchError.
func IsIntegrityMismatch(err error) bool {
	var e *IntegrityMismatchError
	return errors.As(err, &e)
}

// ValidationError indicates a malformed caller-supplied argument.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation checks if the error is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
