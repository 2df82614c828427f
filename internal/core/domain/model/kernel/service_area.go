package kernel

import (
	"fmt"

	"foodloop/internal/pkg/errs"
)

// DefaultServiceArea is the operating envelope of the deployment: the
// latitude/longitude box enclosing Sri Lanka.
var DefaultServiceArea = BoundingBox{
	MinLat: 5.0,
	MaxLat: 10.0,
	MinLng: 79.0,
	MaxLng: 82.0,
}

// BoundingBox is an inclusive latitude/longitude envelope. Coordinates that
// fall outside it are treated as absent by the geocoder and the lifecycle.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Validate checks that the box is non-empty and within WGS84 ranges.
func (b BoundingBox) Validate() error {
	if b.MinLat >= b.MaxLat || b.MinLat < LatitudeMin || b.MaxLat > LatitudeMax {
		return errs.NewValueIsInvalidErrorWithCause("service area",
			fmt.Errorf("latitude range [%v, %v] is invalid", b.MinLat, b.MaxLat))
	}
	if b.MinLng >= b.MaxLng || b.MinLng < LongitudeMin || b.MaxLng > LongitudeMax {
		return errs.NewValueIsInvalidErrorWithCause("service area",
			fmt.Errorf("longitude range [%v, %v] is invalid", b.MinLng, b.MaxLng))
	}
	return nil
}

// Contains reports whether p lies inside the box. Unconstructed points are
// never inside.
func (b BoundingBox) Contains(p GeoPoint) bool {
	if p.Validate() != nil {
		return false
	}
	return p.latitude >= b.MinLat && p.latitude <= b.MaxLat &&
		p.longitude >= b.MinLng && p.longitude <= b.MaxLng
}

// ContainsPtr is Contains for optional points; nil is never inside.
func (b BoundingBox) ContainsPtr(p *GeoPoint) bool {
	return p != nil && b.Contains(*p)
}

// Require returns a validation error when p lies outside the box.
func (b BoundingBox) Require(p GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !b.Contains(p) {
		return errs.NewValueIsInvalidErrorWithCause("coordinates",
			fmt.Errorf("%s is outside the service area", p))
	}
	return nil
}
