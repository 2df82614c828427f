package geocoding

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultNegativeTTL is how long a failed lookup is remembered.
const DefaultNegativeTTL = 10 * time.Minute

type resolution struct {
	point kernel.GeoPoint
	found bool
}

// Resolver implements ports.GeoResolver on top of a Geocoder.
//
// Resolved addresses are cached for the life of the process. Misses,
// upstream failures and results outside the service area are cached as
// absent for the negative TTL. Concurrent lookups of the same uncached
// address share one upstream call. A caller whose context ends first gets
// absent without waiting for that call.
type Resolver struct {
	geocoder    ports.Geocoder
	area        kernel.BoundingBox
	negativeTTL time.Duration
	cache       *cache.Cache
	group       singleflight.Group
	log         *slog.Logger
}

func NewResolver(
	geocoder ports.Geocoder,
	area kernel.BoundingBox,
	negativeTTL time.Duration,
	log *slog.Logger,
) *Resolver {
	if negativeTTL <= 0 {
		negativeTTL = DefaultNegativeTTL
	}
	return &Resolver{
		geocoder:    geocoder,
		area:        area,
		negativeTTL: negativeTTL,
		cache:       cache.New(cache.NoExpiration, negativeTTL),
		log:         log.With("component", "geo_resolver"),
	}
}

func (r *Resolver) Resolve(ctx context.Context, address string) (kernel.GeoPoint, bool) {
	key := normalize(address)
	if key == "" {
		return kernel.GeoPoint{}, false
	}

	if cached, ok := r.cache.Get(key); ok {
		res := cached.(resolution)
		return res.point, res.found
	}

	// The shared lookup must not be cancelled by whichever caller started it.
	// A caller that gives up leaves it running for the others and the cache.
	ch := r.group.DoChan(key, func() (any, error) {
		return r.lookup(context.WithoutCancel(ctx), key, address), nil
	})
	select {
	case result := <-ch:
		res := result.Val.(resolution)
		return res.point, res.found
	case <-ctx.Done():
		r.log.DebugContext(ctx, "geocoding abandoned by caller", "address", address, "error", ctx.Err())
		return kernel.GeoPoint{}, false
	}
}

func (r *Resolver) lookup(ctx context.Context, key, address string) resolution {
	if cached, ok := r.cache.Get(key); ok {
		return cached.(resolution)
	}

	point, found, err := r.geocoder.Geocode(ctx, address)
	switch {
	case err != nil:
		r.log.WarnContext(ctx, "geocoding failed", "address", address, "error", err)
	case !found:
		r.log.DebugContext(ctx, "address not found", "address", address)
	case !r.area.Contains(point):
		r.log.WarnContext(ctx, "geocoded point outside service area", "address", address, "point", point.String())
	default:
		res := resolution{point: point, found: true}
		r.cache.Set(key, res, cache.NoExpiration)
		return res
	}

	res := resolution{}
	r.cache.Set(key, res, r.negativeTTL)
	return res
}

// normalize lowercases and collapses whitespace so trivially different
// spellings share a cache entry.
func normalize(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
