package services

import (
	"fmt"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"
)

// DefaultRouteSegments splits a simulated route into twelve legs.
const DefaultRouteSegments = 12

// RoutePlanner plans straight-line routes for simulated drivers.
type RoutePlanner struct{}

func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// PlanWaypoints returns segments+1 points: from, the evenly spaced points in
// between, and to.
func (RoutePlanner) PlanWaypoints(from, to kernel.GeoPoint, segments int) ([]kernel.GeoPoint, error) {
	if segments < 1 {
		return nil, errs.NewValueIsOutOfRangeError("segments", segments, 1, "unbounded")
	}
	if err := from.Validate(); err != nil {
		return nil, fmt.Errorf("route start: %w", err)
	}
	if err := to.Validate(); err != nil {
		return nil, fmt.Errorf("route end: %w", err)
	}

	waypoints := make([]kernel.GeoPoint, 0, segments+1)
	waypoints = append(waypoints, from)
	for i := 1; i < segments; i++ {
		p, err := from.Interpolate(to, float64(i)/float64(segments))
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, p)
	}
	waypoints = append(waypoints, to)

	return waypoints, nil
}

// Destination is where the driver of d is heading: the pickup point until the
// food is collected, then the receiver. Other statuses have no destination.
func (RoutePlanner) Destination(d *donation.Donation, pickup, dropoff *kernel.GeoPoint) *kernel.GeoPoint {
	switch d.Status() {
	case donation.Assigned:
		return pickup
	case donation.PickedUp:
		return dropoff
	default:
		return nil
	}
}
