package donation

import (
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"
)

// Precondition is the part of a donation a conditional store write is
// checked against: the status and both assignment fields as they were when
// a guard was evaluated.
type Precondition struct {
	Status     Status
	ReceiverID *kernel.UUID
	DriverID   *kernel.UUID
}

// Precondition captures the current guard-relevant state. Take it before
// applying a transition and pass it to the store with the mutated donation.
func (d *Donation) Precondition() Precondition {
	return Precondition{
		Status:     d.status,
		ReceiverID: d.ReceiverID(),
		DriverID:   d.DriverID(),
	}
}

// Matches reports whether d is still in the state p was taken from.
func (p Precondition) Matches(d *Donation) bool {
	return d.status == p.Status &&
		kernel.SameUUID(d.receiverID, p.ReceiverID) &&
		kernel.SameUUID(d.driverID, p.DriverID)
}

// IsExpired reports whether now is at or past the expiry.
func (d *Donation) IsExpired(now time.Time) bool {
	return !now.Before(d.expiresAt)
}

// IsAvailable is the browse predicate: open status, not expired, unclaimed.
// It reads the same fields the transitions maintain.
func (d *Donation) IsAvailable(now time.Time) bool {
	return d.status.IsOpen() && !d.IsExpired(now) && d.receiverID == nil
}

// IsInTransit reports whether observers should receive the driver's position.
func (d *Donation) IsInTransit() bool {
	return d.status.IsInTransit()
}

// Approve moves a pending donation to approved.
func (d *Donation) Approve(now time.Time) error {
	if d.status != Pending {
		return d.reject(errs.ReasonWrongState)
	}

	d.status = Approved
	d.updatedAt = now
	return nil
}

// Claim reserves the donation for a receiver.
//
// Guards, in order:
//   - a receiver is already set, or the donation moved past claiming: already-claimed
//   - status is not pending or approved: wrong-state
//   - now is at or after the expiry: expired
func (d *Donation) Claim(receiverID kernel.UUID, now time.Time) error {
	if err := receiverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("receiver id", err)
	}

	if d.receiverID != nil || d.status.hasReceiver() {
		return d.reject(errs.ReasonAlreadyClaimed)
	}
	if !d.status.IsOpen() {
		return d.reject(errs.ReasonWrongState)
	}
	if d.IsExpired(now) {
		return d.reject(errs.ReasonExpired)
	}

	d.receiverID = &receiverID
	d.status = Assigned
	d.updatedAt = now
	return nil
}

// ConfirmPickup assigns the driver and records the pickup time.
//
// Guards, in order:
//   - a driver is already set, or the donation is past pickup: already-assigned
//   - status is not assigned or there is no receiver: wrong-state
//   - now is at or after the expiry: expired
func (d *Donation) ConfirmPickup(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}

	if d.driverID != nil || d.status.hasDriver() {
		return d.reject(errs.ReasonAlreadyAssigned)
	}
	if d.status != Assigned || d.receiverID == nil {
		return d.reject(errs.ReasonWrongState)
	}
	if d.IsExpired(now) {
		return d.reject(errs.ReasonExpired)
	}

	pickedUpAt := now
	d.driverID = &driverID
	d.actualPickupAt = &pickedUpAt
	d.status = PickedUp
	d.updatedAt = now
	return nil
}

// Deliver completes the handoff. Only the assigned driver may deliver.
func (d *Donation) Deliver(driverID kernel.UUID, now time.Time) error {
	if d.status != PickedUp || d.receiverID == nil {
		return d.reject(errs.ReasonWrongState)
	}
	if d.driverID == nil || !d.driverID.IsEqual(driverID) {
		return d.reject(errs.ReasonWrongActor)
	}

	d.status = Delivered
	d.updatedAt = now
	return nil
}

// Cancel terminates a donation from any non-terminal status. Assignments
// are kept as they were.
func (d *Donation) Cancel(now time.Time) error {
	if d.status.IsTerminal() || d.status.Validate() != nil {
		return d.reject(errs.ReasonWrongState)
	}

	d.status = Cancelled
	d.updatedAt = now
	return nil
}

// CorrectDonorLocation replaces the pickup coordinates with a resolved point
// inside area. It never touches status or assignments.
func (d *Donation) CorrectDonorLocation(point kernel.GeoPoint, area kernel.BoundingBox, now time.Time) error {
	if d.status.IsTerminal() {
		return d.reject(errs.ReasonWrongState)
	}
	if err := area.Require(point); err != nil {
		return err
	}

	d.donorLocation = &point
	d.updatedAt = now
	return nil
}

// HasDonorLocationIn reports whether the stored pickup coordinates are known
// and inside area.
func (d *Donation) HasDonorLocationIn(area kernel.BoundingBox) bool {
	return area.ContainsPtr(d.donorLocation)
}

func (d *Donation) reject(reason errs.RejectionReason) error {
	return errs.NewTransitionRejectedError(d.status, reason)
}
