package services

import (
	"cmp"
	"slices"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
)

// RankedDonation is a donation with its distance from the ranking origin.
// DistanceKnown is false when either side has no coordinates.
type RankedDonation struct {
	Donation      *donation.Donation
	DistanceKm    float64
	DistanceKnown bool
}

// ProximityRanker orders donations by the distance between an origin (the
// driver's last-known position) and each donation's pickup point.
//
// Ordering rules:
//   - known distances first, nearest first
//   - unknown distances last
//   - ties broken by creation time, oldest first
type ProximityRanker struct{}

func NewProximityRanker() ProximityRanker {
	return ProximityRanker{}
}

// Rank returns a new slice; the input is not reordered. Donations that fail
// Validate are skipped.
func (ProximityRanker) Rank(origin *kernel.GeoPoint, donations []*donation.Donation) []RankedDonation {
	ranked := make([]RankedDonation, 0, len(donations))
	for _, d := range donations {
		if d.Validate() != nil {
			continue
		}
		km, known := kernel.DistanceBetween(origin, d.DonorLocation())
		ranked = append(ranked, RankedDonation{
			Donation:      d,
			DistanceKm:    km,
			DistanceKnown: known,
		})
	}

	slices.SortStableFunc(ranked, func(a, b RankedDonation) int {
		if a.DistanceKnown != b.DistanceKnown {
			if a.DistanceKnown {
				return -1
			}
			return 1
		}
		if a.DistanceKnown {
			if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
				return c
			}
		}
		return a.Donation.CreatedAt().Compare(b.Donation.CreatedAt())
	})

	return ranked
}
