package donation

import (
	"fmt"
	"strings"

	"foodloop/internal/pkg/errs"
)

// Status is the lifecycle state of a donation. The integer value is what
// the stores persist, so existing values must never be renumbered.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Pending
	Approved
	Assigned
	PickedUp
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Approved:  "approved",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus accepts the names produced by String, case-insensitively.
// "unknown" is rejected.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects Unknown and out-of-range values read from persistence or
// the wire.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsOpen reports whether a receiver can still claim a donation in this
// status, ignoring expiry.
func (s Status) IsOpen() bool {
	return s == Pending || s == Approved
}

// IsInTransit reports whether a driver's position is relevant to observers:
// en route to pickup or en route to delivery.
func (s Status) IsInTransit() bool {
	return s == Assigned || s == PickedUp
}

// hasReceiver reports whether the status requires an assigned receiver.
func (s Status) hasReceiver() bool {
	return s == Assigned || s == PickedUp || s == Delivered
}

// hasDriver reports whether the status requires an assigned driver.
func (s Status) hasDriver() bool {
	return s == PickedUp || s == Delivered
}

// ValidateAssignments checks that the assignment fields agree with the
// status. Cancelled records keep whatever they held when cancelled, but a
// driver is never present without a receiver.
func (s Status) ValidateAssignments(receiver, driver, pickedUp bool) error {
	if driver != pickedUp {
		return errs.NewValueIsInvalidErrorWithCause("actual pickup",
			fmt.Errorf("pickup time and driver must be set together (status %s)", s))
	}
	if driver && !receiver {
		return errs.NewValueIsInvalidErrorWithCause("assigned driver",
			fmt.Errorf("%s donation has a driver but no receiver", s))
	}
	if s == Cancelled {
		return nil
	}
	if receiver != s.hasReceiver() {
		return errs.NewValueIsInvalidErrorWithCause("assigned receiver",
			fmt.Errorf("%s is not a valid status to have receiver=%t", s, receiver))
	}
	if driver != s.hasDriver() {
		return errs.NewValueIsInvalidErrorWithCause("assigned driver",
			fmt.Errorf("%s is not a valid status to have driver=%t", s, driver))
	}
	return nil
}
