package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"
	"foodloop/internal/pkg/guard"
)

var (
	// ErrUserIsNotConstructed is returned when a User was not built by NewUser
	// or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrDisplayNameIsRequired is returned for a blank display name.
	ErrDisplayNameIsRequired = errs.NewValueIsRequiredError("display name")
	// ErrAddressIsRequired is returned when a donor without an address tries
	// to donate.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrEmailIsRequired is returned when a donor without an email tries to
	// donate.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrNotADriver is returned when a non-driver reports a position.
	ErrNotADriver = errs.NewValueIsInvalidErrorWithCause("role", errors.New("only drivers report a location"))
)

// User is a donor, receiver or driver profile.
//
// Example:
//
//	u, err := user.NewUser(kernel.NewUUID(), user.Driver, "Nimal", "nimal@example.lk", "", nil, time.Now())
//	if err != nil {
//	    return err
//	}
//	_ = u.MoveTo(point, time.Now())
type User struct {
	id                kernel.UUID
	role              Role
	displayName       string
	email             string
	address           string
	location          *kernel.GeoPoint
	locationUpdatedAt *time.Time
	createdAt         time.Time

	guard guard.ConstructorGuard
}

// NewUser validates and builds a profile. Email and address are optional at
// registration; donors need both before their first donation.
func NewUser(
	id kernel.UUID,
	role Role,
	displayName string,
	email string,
	address string,
	location *kernel.GeoPoint,
	createdAt time.Time,
) (*User, error) {
	u := &User{
		address:   strings.TrimSpace(address),
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setRole(role),
		u.setDisplayName(displayName),
		u.setEmail(email),
		u.setLocation(location),
	); err != nil {
		return nil, err
	}

	if location != nil {
		at := createdAt
		u.locationUpdatedAt = &at
	}

	return u, nil
}

// RestoreUser rebuilds a profile read from a store.
func RestoreUser(
	id kernel.UUID,
	role Role,
	displayName string,
	email string,
	address string,
	location *kernel.GeoPoint,
	locationUpdatedAt *time.Time,
	createdAt time.Time,
) (*User, error) {
	u := &User{
		address:           address,
		locationUpdatedAt: locationUpdatedAt,
		createdAt:         createdAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setRole(role),
		u.setDisplayName(displayName),
		u.setEmail(email),
		u.setLocation(location),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) DisplayName() string {
	return u.displayName
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Address() string {
	return u.address
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Location returns a copy of the last-known or profile coordinates.
func (u *User) Location() *kernel.GeoPoint {
	if u.location == nil {
		return nil
	}
	p := *u.location
	return &p
}

func (u *User) LocationUpdatedAt() *time.Time {
	if u.locationUpdatedAt == nil {
		return nil
	}
	t := *u.locationUpdatedAt
	return &t
}

// ValidateCanDonate checks that the profile has what a pickup needs: an
// address to go to and an email to notify.
func (u *User) ValidateCanDonate() error {
	var problems []error
	if u.address == "" {
		problems = append(problems, ErrAddressIsRequired)
	}
	if u.email == "" {
		problems = append(problems, ErrEmailIsRequired)
	}
	return errors.Join(problems...)
}

// MoveTo records a driver's last-known position.
func (u *User) MoveTo(point kernel.GeoPoint, now time.Time) error {
	if u.role != Driver {
		return ErrNotADriver
	}
	if err := point.Validate(); err != nil {
		return err
	}

	u.location = &point
	u.locationUpdatedAt = &now
	return nil
}

// Relocate replaces the profile coordinates of any role. A nil point clears
// them.
func (u *User) Relocate(point *kernel.GeoPoint, now time.Time) error {
	if err := u.setLocation(point); err != nil {
		return err
	}
	if point == nil {
		u.locationUpdatedAt = nil
		return nil
	}
	u.locationUpdatedAt = &now
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrDisplayNameIsRequired
	}
	u.displayName = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		u.email = ""
		return nil
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q: %w", email, err))
	}
	u.email = parsed.Address
	return nil
}

func (u *User) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		u.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	p := *location
	u.location = &p
	return nil
}
