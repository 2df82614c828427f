package kernel

import (
	"fmt"
	"math"
	"time"
)

const (
	// EarthRadiusKm is the mean earth radius used by HaversineKm.
	EarthRadiusKm = 6371.0
	// CitySpeedKmh is the average driving speed assumed for arrival estimates.
	CitySpeedKmh = 30.0
)

// HaversineKm returns the great-circle distance between two coordinate pairs
// in kilometres. Malformed input yields NaN; callers holding optional
// coordinates should use DistanceBetween instead.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceBetween returns the distance between two optional points. The
// boolean is false when either side is missing, which callers report as
// "distance unknown" instead of measuring against (0, 0).
func DistanceBetween(a, b *GeoPoint) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	km, err := a.DistanceKm(*b)
	if err != nil || math.IsNaN(km) {
		return 0, false
	}
	return km, true
}

// FormatDistance renders sub-kilometre distances in whole metres and longer
// ones in kilometres with one decimal, e.g. "850 m" or "12.3 km".
func FormatDistance(km float64) string {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return "unknown"
	}
	if meters := math.Round(km * 1000); meters < 1000 {
		return fmt.Sprintf("%d m", int(meters))
	}
	return fmt.Sprintf("%.1f km", km)
}

// EstimateTravelTime converts a distance into a driving time at speedKmh,
// rounded up to the next whole minute.
func EstimateTravelTime(km, speedKmh float64) time.Duration {
	if km <= 0 || speedKmh <= 0 || math.IsNaN(km) {
		return 0
	}
	minutes := math.Ceil(km * 60 / speedKmh)
	return time.Duration(minutes) * time.Minute
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
