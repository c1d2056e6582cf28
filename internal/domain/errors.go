package domain

import (
	"errors"
	"fmt"
)

// The engine uses three error families. ValidationError is recoverable and
// surfaced to the player; ConfigurationError marks a defective rule set;
// InvariantViolation marks internal corruption and aborts the month
// transition with the prior snapshot intact. Expected user-input problems
// never panic.

// ValidationError rejects player input (budget floor violated, overdraft,
// bad amount). It never mutates state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// CapExceededError rejects a contribution that would overrun the account's
// annual cap. The full requested amount is rejected; Remaining reports how
// much could still be contributed this calendar year so the caller can
// retry instead of silently losing money.
type CapExceededError struct {
	Account   AccountType
	Requested Money
	Remaining Money
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("contribution of %s to %s exceeds annual cap; %s remaining this year",
		e.Requested, e.Account, e.Remaining)
}

// ConfigurationError signals a defective market rule set, e.g. an account
// type the active market does not recognize. Fatal to the operation.
type ConfigurationError struct {
	Rule   string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Rule, e.Detail)
}

// InvariantViolation signals internal state corruption (negative annual
// counter, cap overrun after validation). It aborts the month transition;
// the prior snapshot stays in force.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated (%s): %s", e.Invariant, e.Detail)
}

// IsValidation reports whether err is a recoverable player-input rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	var ce *CapExceededError
	return errors.As(err, &ve) || errors.As(err, &ce)
}

// IsConfiguration reports whether err is a rule-set defect.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsInvariant reports whether err is an internal invariant violation.
func IsInvariant(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}
