// Package guard enforces construction through constructors for commands,
// queries and value objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard
// when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. Embed it and
// call Validate from the owner's Validate method; a zero value fails.
//
// Example:
//
//	type ClaimDonationCommand struct {
//	    donationID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c ClaimDonationCommand) Validate() error {
//	    return c.guard.Validate(ErrClaimDonationCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
