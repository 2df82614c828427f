package ports

import (
	"context"

	"foodloop/internal/core/domain/model/kernel"
)

// Geocoder is the upstream address lookup. found is false when the service
// answered but knows no match; err is an errs.UpstreamUnavailableError when
// the service could not be reached.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (point kernel.GeoPoint, found bool, err error)
}

// GeoResolver turns free-text addresses into coordinates inside the service
// area. It never fails: any problem resolves to absent.
type GeoResolver interface {
	Resolve(ctx context.Context, address string) (kernel.GeoPoint, bool)
}
