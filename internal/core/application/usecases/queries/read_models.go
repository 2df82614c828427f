// Package queries contains the read path: side-effect free views over
// donations and the people involved in them. Nothing here writes to the
// store; coordinates that look wrong are reported as they are and left to the
// reconciliation job.
package queries

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

// Clock returns the current time.
type Clock func() time.Time

// DonationSummary is the listing shape of a donation.
type DonationSummary struct {
	ID              kernel.UUID
	TrackingID      string
	DonorID         kernel.UUID
	Category        string
	ItemName        string
	Quantity        int
	Storage         string
	ImageRef        string
	ProductType     string
	Freshness       string
	ConfidenceScore *float64
	QualityScore    *float64
	DetectedItems   []string
	PickupWindow    string
	PickupDate      time.Time
	PickupTimeSlot  string
	Status          string
	ExpiresAt       time.Time
	CreatedAt       time.Time
	DonorAddress    string
	// PickupLocation is the stored donation point, or the donor's profile
	// point when the donation has none.
	PickupLocation *kernel.GeoPoint
}

func newDonationSummary(d *donation.Donation, pickup *kernel.GeoPoint) DonationSummary {
	assessment := d.Assessment()
	return DonationSummary{
		ID:              d.ID(),
		TrackingID:      d.TrackingID(),
		DonorID:         d.DonorID(),
		Category:        string(d.Category()),
		ItemName:        d.ItemName(),
		Quantity:        d.Quantity(),
		Storage:         string(d.Storage()),
		ImageRef:        d.ImageRef(),
		ProductType:     string(d.ProductType()),
		Freshness:       string(assessment.Freshness()),
		ConfidenceScore: assessment.Confidence(),
		QualityScore:    assessment.Quality(),
		DetectedItems:   assessment.DetectedItems(),
		PickupWindow:    string(d.PickupWindow()),
		PickupDate:      d.PickupWindow().Date(d.CreatedAt()),
		PickupTimeSlot:  d.PickupTimeSlot(),
		Status:          d.Status().String(),
		ExpiresAt:       d.ExpiresAt(),
		CreatedAt:       d.CreatedAt(),
		DonorAddress:    d.DonorAddress(),
		PickupLocation:  pickup,
	}
}

// Distance is a measured distance with its display form. Known is false
// when either end has no coordinates.
type Distance struct {
	Known     bool
	Km        float64
	Formatted string
}

func newDistance(km float64, known bool) Distance {
	if !known {
		return Distance{}
	}
	return Distance{Known: true, Km: km, Formatted: kernel.FormatDistance(km)}
}

func measure(from, to *kernel.GeoPoint) Distance {
	return newDistance(kernel.DistanceBetween(from, to))
}

// profiles memoises user lookups for the duration of one query.
type profiles struct {
	repo  ports.UserRepository
	known map[kernel.UUID]*user.User
}

func newProfiles(repo ports.UserRepository) *profiles {
	return &profiles{repo: repo, known: make(map[kernel.UUID]*user.User)}
}

// get returns nil without error for users the store does not know.
func (p *profiles) get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if u, ok := p.known[id]; ok {
		return u, nil
	}

	u, err := p.repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		u, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.known[id] = u
	return u, nil
}

// pickupLocation prefers the donation's own coordinates and falls back to the
// donor profile.
func pickupLocation(d *donation.Donation, donor *user.User) *kernel.GeoPoint {
	if location := d.DonorLocation(); location != nil {
		return location
	}
	if donor == nil {
		return nil
	}
	return donor.Location()
}
