package commands

import (
	"context"
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"
)

// ReconcileResult counts what one pass did.
type ReconcileResult struct {
	Scanned    int
	Corrected  int
	Unresolved int
	Conflicts  int
}

// ReconcileDonorCoordinatesCommandHandler is the only writer of corrected
// pickup coordinates. Open donations whose location is missing or outside
// the service area are geocoded again and updated with a conditional write;
// a donation that changed meanwhile is skipped until the next pass.
type ReconcileDonorCoordinatesCommandHandler struct {
	uowFactory UoWFactory
	resolver   ports.GeoResolver
	area       kernel.BoundingBox
	clock      Clock
}

func NewReconcileDonorCoordinatesCommandHandler(
	uowFactory UoWFactory,
	resolver ports.GeoResolver,
	area kernel.BoundingBox,
	clock Clock,
) ReconcileDonorCoordinatesCommandHandler {
	return ReconcileDonorCoordinatesCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		area:       area,
		clock:      clock,
	}
}

func (h ReconcileDonorCoordinatesCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileDonorCoordinatesCommand,
) (ReconcileResult, error) {
	var result ReconcileResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	repo := h.uowFactory.Create().DonationRepository()

	open, err := repo.FindOpen(ctx, cmd.BatchSize())
	if err != nil {
		return result, err
	}

	for _, d := range open {
		if err = ctx.Err(); err != nil {
			return result, err
		}
		if d.HasDonorLocationIn(h.area) {
			continue
		}
		result.Scanned++

		point, ok := h.resolver.Resolve(ctx, d.DonorAddress())
		if !ok {
			result.Unresolved++
			continue
		}

		expected := d.Precondition()
		if err = d.CorrectDonorLocation(point, h.area, h.clock()); err != nil {
			result.Unresolved++
			continue
		}

		err = repo.UpdateIf(ctx, d, expected)
		switch {
		case errors.Is(err, errs.ErrVersionIsInvalid):
			result.Conflicts++
		case err != nil:
			return result, err
		default:
			result.Corrected++
		}
	}

	return result, nil
}
