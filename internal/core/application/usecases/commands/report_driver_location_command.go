package commands

import (
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/guard"
)

var ErrReportDriverLocationCommandIsNotConstructed = errors.New(
	"ReportDriverLocationCommand must be created via NewReportDriverLocationCommand constructor",
)

// ReportDriverLocationCommand carries one position fix from a device or the
// simulator.
type ReportDriverLocationCommand struct {
	driverID kernel.UUID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewReportDriverLocationCommand(driverID kernel.UUID, latitude, longitude float64) (ReportDriverLocationCommand, error) {
	location, locationErr := kernel.NewGeoPoint(latitude, longitude)
	if err := errors.Join(requireID("driver id", driverID), locationErr); err != nil {
		return ReportDriverLocationCommand{}, err
	}

	return ReportDriverLocationCommand{
		driverID: driverID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReportDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportDriverLocationCommandIsNotConstructed)
}

func (c ReportDriverLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c ReportDriverLocationCommand) Location() kernel.GeoPoint {
	return c.location
}
