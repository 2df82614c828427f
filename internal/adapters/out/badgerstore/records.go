package badgerstore

import (
	"encoding/json"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"

	"github.com/google/uuid"
)

const (
	donationPrefix = "donation/"
	trackingPrefix = "tracking/"
	sequencePrefix = "seq/"
	userPrefix     = "user/"
	pushPrefix     = "push/"
)

func donationKey(id kernel.UUID) []byte {
	return []byte(donationPrefix + id.String())
}

func trackingKey(trackingID string) []byte {
	return []byte(trackingPrefix + trackingID)
}

func sequenceKey(day string) []byte {
	return []byte(sequencePrefix + day)
}

func userKey(id kernel.UUID) []byte {
	return []byte(userPrefix + id.String())
}

func pushKey(endpoint string) []byte {
	return []byte(pushPrefix + endpoint)
}

type point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type donationRecord struct {
	ID              uuid.UUID  `json:"id"`
	TrackingID      string     `json:"trackingId"`
	DonorID         uuid.UUID  `json:"donorId"`
	Category        string     `json:"category"`
	ItemName        string     `json:"itemName"`
	Quantity        int        `json:"quantity"`
	Storage         string     `json:"storage"`
	ImageRef        string     `json:"imageRef,omitempty"`
	ConfidenceScore *float64   `json:"confidenceScore,omitempty"`
	QualityScore    *float64   `json:"qualityScore,omitempty"`
	Freshness       string     `json:"freshness,omitempty"`
	DetectedItems   []string   `json:"detectedItems,omitempty"`
	DonorAddress    string     `json:"donorAddress"`
	DonorLocation   *point     `json:"donorLocation,omitempty"`
	PickupWindow    string     `json:"pickupWindow"`
	PickupTimeSlot  string     `json:"pickupTimeSlot,omitempty"`
	ProductType     string     `json:"productType"`
	ActualPickupAt  *time.Time `json:"actualPickupAt,omitempty"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	Status          int        `json:"status"`
	ReceiverID      *uuid.UUID `json:"receiverId,omitempty"`
	DriverID        *uuid.UUID `json:"driverId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func encodeDonation(d *donation.Donation) ([]byte, error) {
	s := d.Snapshot()
	return json.Marshal(donationRecord{
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
		DonorLocation:   pointFromDomain(s.DonorLocation),
		PickupWindow:    string(s.PickupWindow),
		PickupTimeSlot:  s.PickupTimeSlot,
		ProductType:     string(s.ProductType),
		ActualPickupAt:  s.ActualPickupAt,
		ExpiresAt:       s.ExpiresAt,
		Status:          int(s.Status),
		ReceiverID:      rawID(s.ReceiverID),
		DriverID:        rawID(s.DriverID),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	})
}

func decodeDonation(data []byte) (*donation.Donation, error) {
	var r donationRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}
	donorID, err := kernel.UUIDFromBytes(r.DonorID[:])
	if err != nil {
		return nil, err
	}
	receiverID, err := domainID(r.ReceiverID)
	if err != nil {
		return nil, err
	}
	driverID, err := domainID(r.DriverID)
	if err != nil {
		return nil, err
	}
	location, err := pointToDomain(r.DonorLocation)
	if err != nil {
		return nil, err
	}
	assessment, err := donation.NewAssessment(r.ConfidenceScore, r.QualityScore,
		donation.Freshness(r.Freshness), r.DetectedItems)
	if err != nil {
		return nil, err
	}

	return donation.RestoreDonation(donation.Snapshot{
		ID:             id,
		TrackingID:     r.TrackingID,
		DonorID:        donorID,
		Category:       donation.Category(r.Category),
		ItemName:       r.ItemName,
		Quantity:       r.Quantity,
		Storage:        donation.Storage(r.Storage),
		ImageRef:       r.ImageRef,
		Assessment:     assessment,
		DonorAddress:   r.DonorAddress,
		DonorLocation:  location,
		PickupWindow:   donation.PickupWindow(r.PickupWindow),
		PickupTimeSlot: r.PickupTimeSlot,
		ProductType:    donation.ProductType(r.ProductType),
		ActualPickupAt: r.ActualPickupAt,
		ExpiresAt:      r.ExpiresAt,
		Status:         donation.Status(r.Status),
		ReceiverID:     receiverID,
		DriverID:       driverID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	})
}

type userRecord struct {
	ID                uuid.UUID  `json:"id"`
	Role              int        `json:"role"`
	DisplayName       string     `json:"displayName"`
	Email             string     `json:"email,omitempty"`
	Address           string     `json:"address,omitempty"`
	Location          *point     `json:"location,omitempty"`
	LocationUpdatedAt *time.Time `json:"locationUpdatedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

func encodeUser(u *user.User) ([]byte, error) {
	return json.Marshal(userRecord{
		ID:                u.ID().Bytes(),
		Role:              int(u.Role()),
		DisplayName:       u.DisplayName(),
		Email:             u.Email(),
		Address:           u.Address(),
		Location:          pointFromDomain(u.Location()),
		LocationUpdatedAt: u.LocationUpdatedAt(),
		CreatedAt:         u.CreatedAt(),
	})
}

func decodeUser(data []byte) (*user.User, error) {
	var r userRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}
	location, err := pointToDomain(r.Location)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, user.Role(r.Role), r.DisplayName, r.Email, r.Address,
		location, r.LocationUpdatedAt, r.CreatedAt)
}

type subscriptionRecord struct {
	UserID    uuid.UUID `json:"userId"`
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"createdAt"`
}

func pointFromDomain(p *kernel.GeoPoint) *point {
	if p == nil {
		return nil
	}
	return &point{Latitude: p.Latitude(), Longitude: p.Longitude()}
}

func pointToDomain(p *point) (*kernel.GeoPoint, error) {
	if p == nil {
		return nil, nil
	}
	gp, err := kernel.NewGeoPoint(p.Latitude, p.Longitude)
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
