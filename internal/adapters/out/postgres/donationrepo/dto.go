// Package donationrepo maps donation aggregates to the donations table and
// implements the conditional update the lifecycle relies on.
package donationrepo

import (
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DonationDTO is the donations row. Timestamps are owned by the domain, so
// gorm's automatic time tracking is switched off.
type DonationDTO struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TrackingID      string      `gorm:"type:varchar(32);not null;uniqueIndex"`
	DonorID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	Category        string      `gorm:"type:varchar(32);not null"`
	ItemName        string      `gorm:"type:varchar(255);not null"`
	Quantity        int         `gorm:"type:int;not null"`
	Storage         string      `gorm:"type:varchar(16);not null"`
	ImageRef        string      `gorm:"type:varchar(1024)"`
	ConfidenceScore *float64    `gorm:"type:double precision"`
	QualityScore    *float64    `gorm:"type:double precision"`
	Freshness       string      `gorm:"type:varchar(16)"`
	DetectedItems   []string    `gorm:"type:text;serializer:json"`
	DonorAddress    string      `gorm:"type:varchar(512);not null"`
	DonorLocation   LocationDTO `gorm:"embedded;embeddedPrefix:donor_"`
	PickupWindow    string      `gorm:"type:varchar(16);not null"`
	PickupTimeSlot  string      `gorm:"type:varchar(64)"`
	ProductType     string      `gorm:"type:varchar(16);not null"`
	ActualPickupAt  *time.Time
	ExpiresAt       time.Time  `gorm:"not null;index"`
	Status          int        `gorm:"type:smallint;not null;index"`
	ReceiverID      *uuid.UUID `gorm:"type:uuid;index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (DonationDTO) TableName() string {
	return "donations"
}

// LocationDTO holds optional coordinates; both columns are null together.
type LocationDTO struct {
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

// TrackingSequenceDTO is the per-day tracking number counter.
type TrackingSequenceDTO struct {
	Day   string `gorm:"type:varchar(8);primaryKey"`
	Value int    `gorm:"type:int;not null"`
}

func (TrackingSequenceDTO) TableName() string {
	return "tracking_sequences"
}

func fromDomain(d *donation.Donation) DonationDTO {
	s := d.Snapshot()
	return DonationDTO{
		ID:              s.ID.Bytes(),
		TrackingID:      s.TrackingID,
		DonorID:         s.DonorID.Bytes(),
		Category:        string(s.Category),
		ItemName:        s.ItemName,
		Quantity:        s.Quantity,
		Storage:         string(s.Storage),
		ImageRef:        s.ImageRef,
		ConfidenceScore: s.Assessment.Confidence(),
		QualityScore:    s.Assessment.Quality(),
		Freshness:       string(s.Assessment.Freshness()),
		DetectedItems:   s.Assessment.DetectedItems(),
		DonorAddress:    s.DonorAddress,
		DonorLocation:   locationFromDomain(s.DonorLocation),
		PickupWindow:    string(s.PickupWindow),
		PickupTimeSlot:  s.PickupTimeSlot,
		ProductType:     string(s.ProductType),
		ActualPickupAt:  utcPtr(s.ActualPickupAt),
		ExpiresAt:       s.ExpiresAt.UTC(),
		Status:          int(s.Status),
		ReceiverID:      idFromDomain(s.ReceiverID),
		DriverID:        idFromDomain(s.DriverID),
		CreatedAt:       s.CreatedAt.UTC(),
		UpdatedAt:       s.UpdatedAt.UTC(),
	}
}

func toDomain(dto DonationDTO) (*donation.Donation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	donorID, err := kernel.UUIDFromBytes(dto.DonorID[:])
	if err != nil {
		return nil, err
	}
	receiverID, err := idToDomain(dto.ReceiverID)
	if err != nil {
		return nil, err
	}
	driverID, err := idToDomain(dto.DriverID)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPointPtr(dto.DonorLocation.Latitude, dto.DonorLocation.Longitude)
	if err != nil {
		return nil, err
	}
	assessment, err := donation.NewAssessment(dto.ConfidenceScore, dto.QualityScore,
		donation.Freshness(dto.Freshness), dto.DetectedItems)
	if err != nil {
		return nil, err
	}

	return donation.RestoreDonation(donation.Snapshot{
		ID:             id,
		TrackingID:     dto.TrackingID,
		DonorID:        donorID,
		Category:       donation.Category(dto.Category),
		ItemName:       dto.ItemName,
		Quantity:       dto.Quantity,
		Storage:        donation.Storage(dto.Storage),
		ImageRef:       dto.ImageRef,
		Assessment:     assessment,
		DonorAddress:   dto.DonorAddress,
		DonorLocation:  location,
		PickupWindow:   donation.PickupWindow(dto.PickupWindow),
		PickupTimeSlot: dto.PickupTimeSlot,
		ProductType:    donation.ProductType(dto.ProductType),
		ActualPickupAt: dto.ActualPickupAt,
		ExpiresAt:      dto.ExpiresAt,
		Status:         donation.Status(dto.Status),
		ReceiverID:     receiverID,
		DriverID:       driverID,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	})
}

func locationFromDomain(p *kernel.GeoPoint) LocationDTO {
	if p == nil {
		return LocationDTO{}
	}
	lat, lng := p.Latitude(), p.Longitude()
	return LocationDTO{Latitude: &lat, Longitude: &lng}
}

func idFromDomain(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func idToDomain(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
