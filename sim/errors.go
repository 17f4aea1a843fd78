package sim

import (
	"errors"
	"fmt"
)

// InvariantError reports a state-invariant violation: the domain model
// reached a state its own constraints forbid. Fatal for the trial.
type InvariantError struct {
	Trial int
	Epoch int
	Err   error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("trial %d epoch %d: state invariant violated: %v", e.Trial, e.Epoch, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// IllegalActionError reports that the policy chose an action violating a
// precondition or state-action constraint. A policy-level fault, never
// coerced into a legal action.
type IllegalActionError struct {
	Trial int
	Epoch int
	Err   error
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("trial %d epoch %d: illegal action: %v", e.Trial, e.Epoch, e.Err)
}

func (e *IllegalActionError) Unwrap() error { return e.Err }

// IsInvariantViolation reports whether err is (or wraps) an InvariantError.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

// IsIllegalAction reports whether err is (or wraps) an IllegalActionError.
func IsIllegalAction(err error) bool {
	var ie *IllegalActionError
	return errors.As(err, &ie)
}
