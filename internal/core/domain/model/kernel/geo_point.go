package kernel

import (
	"errors"
	"fmt"
	"math"

	"foodloop/internal/pkg/errs"
	"foodloop/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude.
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when a zero-value GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 latitude/longitude pair. It is an immutable value
// object; the zero value is invalid and fails Validate, so a missing
// coordinate is modelled as a nil *GeoPoint rather than (0, 0).
//
// Example:
//
//	colombo, err := kernel.NewGeoPoint(6.9271, 79.8612)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(colombo) // GeoPoint(6.927100,79.861200)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint validates both coordinates against the WGS84 ranges. NaN and
// infinities are rejected.
//
// Parameters:
//   - latitude: degrees in [LatitudeMin, LatitudeMax]
//   - longitude: degrees in [LongitudeMin, LongitudeMax]
//
// Returns:
//   - GeoPoint: a valid point
//   - error: joined range errors for every invalid coordinate
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// NewGeoPointPtr is NewGeoPoint for optional coordinates: both nil yields a
// nil point, exactly one nil is a validation error.
func NewGeoPointPtr(latitude, longitude *float64) (*GeoPoint, error) {
	if latitude == nil && longitude == nil {
		return nil, nil
	}
	if latitude == nil || longitude == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"coordinates", errors.New("latitude and longitude must be supplied together"))
	}

	p, err := NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate returns ErrGeoPointIsNotConstructed for the zero value.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns degrees north.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns degrees east.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two constructed points exactly.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

// DistanceKm returns the great-circle distance to other in kilometres.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return HaversineKm(p.latitude, p.longitude, other.latitude, other.longitude), nil
}

// Interpolate returns the point at ratio along the straight line from p to
// other, with ratio clamped to [0, 1].
func (p GeoPoint) Interpolate(other GeoPoint, ratio float64) (GeoPoint, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return GeoPoint{}, err
	}

	ratio = math.Max(0, math.Min(1, ratio))
	return NewGeoPoint(
		p.latitude+(other.latitude-p.latitude)*ratio,
		p.longitude+(other.longitude-p.longitude)*ratio,
	)
}

// setLatitude and setLongitude use pointer receivers so the constructor can
// validate and assign in one step while the public API stays value based.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}
