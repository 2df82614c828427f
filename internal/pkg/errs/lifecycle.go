package errs

import (
	"errors"
	"fmt"
)

var (
	ErrTransitionRejected  = errors.New("transition rejected")
	ErrExpired             = errors.New("donation has expired")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// RejectionReason names the guard that refused a lifecycle transition.
type RejectionReason string

const (
	ReasonAlreadyClaimed  RejectionReason = "already-claimed"
	ReasonAlreadyAssigned RejectionReason = "already-assigned"
	ReasonExpired         RejectionReason = "expired"
	ReasonWrongActor      RejectionReason = "wrong-actor"
	ReasonWrongState      RejectionReason = "wrong-state"
)

// TransitionRejectedError is returned when a guard refuses a transition.
// It is never retried by the engine. A rejection for ReasonExpired also
// matches ErrExpired so callers can tell "no longer available" apart from a
// lost race.
type TransitionRejectedError struct {
	Status string
	Reason RejectionReason
	Cause  error
}

func NewTransitionRejectedError(status fmt.Stringer, reason RejectionReason) *TransitionRejectedError {
	return &TransitionRejectedError{
		Status: status.String(),
		Reason: reason,
	}
}

func NewTransitionRejectedErrorWithCause(
	status fmt.Stringer,
	reason RejectionReason,
	cause error,
) *TransitionRejectedError {
	return &TransitionRejectedError{
		Status: status.String(),
		Reason: reason,
		Cause:  cause,
	}
}

func (e *TransitionRejectedError) Error() string {
	msg := fmt.Sprintf("%s: %s (status: %s)", ErrTransitionRejected, e.Reason, e.Status)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *TransitionRejectedError) Unwrap() error {
	return ErrTransitionRejected
}

func (e *TransitionRejectedError) Is(target error) bool {
	return target == ErrExpired && e.Reason == ReasonExpired
}

// UpstreamUnavailableError wraps a failed call to an external dependency
// such as the geocoder or a notification channel.
type UpstreamUnavailableError struct {
	Service string
	Cause   error
}

func NewUpstreamUnavailableError(service string, cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{
		Service: service,
		Cause:   cause,
	}
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUpstreamUnavailable, e.Service, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUpstreamUnavailable, e.Service)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return ErrUpstreamUnavailable
}

// RejectionOf extracts the transition rejection from err, if any.
func RejectionOf(err error) (*TransitionRejectedError, bool) {
	var rejected *TransitionRejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
