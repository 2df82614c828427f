package user

import (
	"fmt"
	"strings"

	"foodloop/internal/pkg/errs"
)

// Role is the part a user plays in a handoff.
type Role int

const (
	// RoleUnknown catches uninitialised values.
	RoleUnknown Role = iota
	Donor
	Receiver
	Driver
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		Donor:       "donor",
		Receiver:    "receiver",
		Driver:      "driver",
	}
}

func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == needle {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if r <= RoleUnknown || r > Driver {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
