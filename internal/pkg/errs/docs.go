// Package errs provides the error vocabulary shared by the foodloop core.
//
// Each error kind follows the same shape:
//   - a sentinel error variable (e.g. ErrValueIsRequired) for errors.Is
//   - a struct type carrying details (parameter name, value, cause)
//   - constructors with and without a cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// Validation kinds (ValueIsInvalid, ValueIsOutOfRange, ValueIsRequired) also
// match ErrValidationFailed. Lifecycle guards return TransitionRejectedError,
// which matches ErrExpired when the reason is an elapsed expiry. Failed calls
// to external services are wrapped in UpstreamUnavailableError. Lost
// optimistic-concurrency races surface as VersionIsInvalidError.
package errs
