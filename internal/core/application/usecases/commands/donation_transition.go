package commands

import (
	"context"
	"errors"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"
)

// transition describes one guarded lifecycle step.
type transition struct {
	kind ports.TransitionKind
	// conflict is reported when the conditional write loses a race.
	conflict errs.RejectionReason
	// authorize checks the acting user against the donation before the guard.
	authorize func(ctx context.Context, users ports.UserRepository, d *donation.Donation) error
	apply     func(d *donation.Donation, now time.Time) error
}

// transitioner runs a transition as read, guard, conditional write, commit,
// notify. It makes exactly one attempt.
type transitioner struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      Clock
}

func (t transitioner) run(ctx context.Context, donationID kernel.UUID, step transition) (*donation.Donation, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DonationRepository()

	d, err := repo.Get(ctx, donationID)
	if err != nil {
		return nil, err
	}

	if step.authorize != nil {
		if err = step.authorize(ctx, uow.UserRepository(), d); err != nil {
			return nil, err
		}
	}

	now := t.clock()
	expected := d.Precondition()
	if err = step.apply(d, now); err != nil {
		return nil, err
	}

	if err = repo.UpdateIf(ctx, d, expected); err != nil {
		return nil, t.lostRace(ctx, donationID, expected.Status, step.conflict, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, t.lostRace(ctx, donationID, expected.Status, step.conflict, err)
	}

	t.notifier.Notify(ctx, newTransitionEvent(step.kind, d, now))
	return d, nil
}

// lostRace turns a version conflict into a rejection carrying the status the
// winner left behind. Other errors pass through.
func (t transitioner) lostRace(
	ctx context.Context,
	donationID kernel.UUID,
	readStatus donation.Status,
	reason errs.RejectionReason,
	err error,
) error {
	if !errors.Is(err, errs.ErrVersionIsInvalid) {
		return err
	}

	status := readStatus
	if current, getErr := t.uowFactory.Create().DonationRepository().Get(ctx, donationID); getErr == nil {
		status = current.Status()
	}
	return errs.NewTransitionRejectedErrorWithCause(status, reason, err)
}

// requireRole loads the actor and rejects anyone without role as wrong-actor.
func requireRole(
	ctx context.Context,
	users ports.UserRepository,
	d *donation.Donation,
	actorID kernel.UUID,
	role user.Role,
) error {
	actor, err := users.Get(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role() != role {
		return errs.NewTransitionRejectedError(d.Status(), errs.ReasonWrongActor)
	}
	return nil
}

func newTransitionEvent(kind ports.TransitionKind, d *donation.Donation, at time.Time) ports.TransitionEvent {
	recipients := []kernel.UUID{d.DonorID()}
	if id := d.ReceiverID(); id != nil {
		recipients = append(recipients, *id)
	}
	if id := d.DriverID(); id != nil {
		recipients = append(recipients, *id)
	}

	return ports.TransitionEvent{
		Kind:       kind,
		DonationID: d.ID(),
		TrackingID: d.TrackingID(),
		ItemName:   d.ItemName(),
		Status:     d.Status().String(),
		Recipients: recipients,
		OccurredAt: at,
	}
}
