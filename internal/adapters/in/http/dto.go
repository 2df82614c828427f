package http

import (
	"time"

	"foodloop/internal/core/application/usecases/queries"
	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// Request and response bodies of the REST API, shaped as in api/openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Status  string `json:"status,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func newCoordinates(p *kernel.GeoPoint) *Coordinates {
	if p == nil {
		return nil
	}
	return &Coordinates{Latitude: p.Latitude(), Longitude: p.Longitude()}
}

type NewUser struct {
	Role        string   `json:"role"`
	DisplayName string   `json:"displayName"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type User struct {
	ID          uuid.UUID    `json:"id"`
	Role        string       `json:"role"`
	DisplayName string       `json:"displayName"`
	Email       string       `json:"email"`
	Address     string       `json:"address,omitempty"`
	Location    *Coordinates `json:"location,omitempty"`
}

func newUser(u *user.User) User {
	return User{
		ID:          u.ID().Bytes(),
		Role:        u.Role().String(),
		DisplayName: u.DisplayName(),
		Email:       u.Email(),
		Address:     u.Address(),
		Location:    newCoordinates(u.Location()),
	}
}

type PushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type PushSubscription struct {
	Endpoint string   `json:"endpoint"`
	Keys     PushKeys `json:"keys"`
}

type NewDonation struct {
	DonorID         uuid.UUID  `json:"donorId"`
	Category        string     `json:"category"`
	ItemName        string     `json:"itemName"`
	Quantity        int        `json:"quantity"`
	Storage         string     `json:"storage"`
	ImageRef        string     `json:"imageRef"`
	ConfidenceScore *float64   `json:"confidenceScore"`
	QualityScore    *float64   `json:"qualityScore"`
	Freshness       string     `json:"freshness"`
	DetectedItems   []string   `json:"detectedItems"`
	PickupWindow    string     `json:"pickupWindow"`
	PickupTimeSlot  string     `json:"pickupTimeSlot"`
	ProductType     string     `json:"productType"`
	PackageExpiry   *time.Time `json:"packageExpiry"`
	UserExpiry      *time.Time `json:"userExpiry"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
}

type ClaimRequest struct {
	ReceiverID uuid.UUID `json:"receiverId"`
}

type DriverActionRequest struct {
	DriverID uuid.UUID `json:"driverId"`
}

type CancelRequest struct {
	DonorID uuid.UUID `json:"donorId"`
}

type SimulationRequest struct {
	DonationID uuid.UUID `json:"donationId"`
}

type SimulationResponse struct {
	Waypoints []Coordinates `json:"waypoints"`
}

type LocationResponse struct {
	PublishedTo []uuid.UUID `json:"publishedTo"`
}

type Distance struct {
	Known     bool    `json:"known"`
	Km        float64 `json:"km,omitempty"`
	Formatted string  `json:"formatted"`
}

func newDistance(d queries.Distance) *Distance {
	if !d.Known {
		return &Distance{Formatted: "unknown"}
	}
	return &Distance{Known: true, Km: d.Km, Formatted: d.Formatted}
}

type Donation struct {
	ID              uuid.UUID    `json:"id"`
	TrackingID      string       `json:"trackingId"`
	DonorID         uuid.UUID    `json:"donorId"`
	DonorName       string       `json:"donorName,omitempty"`
	DonorAddress    string       `json:"donorAddress,omitempty"`
	Category        string       `json:"category"`
	ItemName        string       `json:"itemName"`
	Quantity        int          `json:"quantity"`
	Storage         string       `json:"storage"`
	ImageRef        string       `json:"imageRef,omitempty"`
	ProductType     string       `json:"productType"`
	Freshness       string       `json:"freshness,omitempty"`
	ConfidenceScore *float64     `json:"confidenceScore,omitempty"`
	QualityScore    *float64     `json:"qualityScore,omitempty"`
	DetectedItems   []string     `json:"detectedItems,omitempty"`
	PickupWindow    string       `json:"pickupWindow"`
	PickupDate      *time.Time   `json:"pickupDate,omitempty"`
	PickupTimeSlot  string       `json:"pickupTimeSlot,omitempty"`
	Status          string       `json:"status"`
	ReceiverID      *uuid.UUID   `json:"receiverId,omitempty"`
	DriverID        *uuid.UUID   `json:"driverId,omitempty"`
	ActualPickupAt  *time.Time   `json:"actualPickupAt,omitempty"`
	ExpiresAt       time.Time    `json:"expiresAt"`
	CreatedAt       time.Time    `json:"createdAt"`
	PickupLocation  *Coordinates `json:"pickupLocation,omitempty"`
	Distance        *Distance    `json:"distance,omitempty"`
	ETAMinutes      *int         `json:"etaMinutes,omitempty"`
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func newDonation(d *donation.Donation) Donation {
	assessment := d.Assessment()
	return Donation{
		ID:              d.ID().Bytes(),
		TrackingID:      d.TrackingID(),
		DonorID:         d.DonorID().Bytes(),
		DonorAddress:    d.DonorAddress(),
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
		PickupTimeSlot:  d.PickupTimeSlot(),
		Status:          d.Status().String(),
		ReceiverID:      optionalID(d.ReceiverID()),
		DriverID:        optionalID(d.DriverID()),
		ActualPickupAt:  d.ActualPickupAt(),
		ExpiresAt:       d.ExpiresAt(),
		CreatedAt:       d.CreatedAt(),
		PickupLocation:  newCoordinates(d.DonorLocation()),
	}
}

func newDonationSummary(s queries.DonationSummary) Donation {
	pickupDate := s.PickupDate
	return Donation{
		ID:              s.ID.Bytes(),
		TrackingID:      s.TrackingID,
		DonorID:         s.DonorID.Bytes(),
		DonorAddress:    s.DonorAddress,
		Category:        s.Category,
		ItemName:        s.ItemName,
		Quantity:        s.Quantity,
		Storage:         s.Storage,
		ImageRef:        s.ImageRef,
		ProductType:     s.ProductType,
		Freshness:       s.Freshness,
		ConfidenceScore: s.ConfidenceScore,
		QualityScore:    s.QualityScore,
		DetectedItems:   s.DetectedItems,
		PickupWindow:    s.PickupWindow,
		PickupDate:      &pickupDate,
		PickupTimeSlot:  s.PickupTimeSlot,
		Status:          s.Status,
		ExpiresAt:       s.ExpiresAt,
		CreatedAt:       s.CreatedAt,
		PickupLocation:  newCoordinates(s.PickupLocation),
	}
}

func etaMinutes(eta time.Duration) *int {
	if eta <= 0 {
		return nil
	}
	minutes := int(eta / time.Minute)
	return &minutes
}

type Party struct {
	ID          uuid.UUID    `json:"id"`
	DisplayName string       `json:"displayName,omitempty"`
	Address     string       `json:"address,omitempty"`
	Location    *Coordinates `json:"location,omitempty"`
	LocatedAt   *time.Time   `json:"locatedAt,omitempty"`
}

func newParty(p *queries.Party) *Party {
	if p == nil {
		return nil
	}
	return &Party{
		ID:          p.ID.Bytes(),
		DisplayName: p.DisplayName,
		Address:     p.Address,
		Location:    newCoordinates(p.Location),
		LocatedAt:   p.LocationUpdatedAt,
	}
}

type Tracking struct {
	Donation       Donation     `json:"donation"`
	Donor          *Party       `json:"donor"`
	Receiver       *Party       `json:"receiver,omitempty"`
	Driver         *Party       `json:"driver,omitempty"`
	ActualPickupAt *time.Time   `json:"actualPickupAt,omitempty"`
	Destination    *Coordinates `json:"destination,omitempty"`
	DriverDistance *Distance    `json:"driverDistance"`
	ETAMinutes     *int         `json:"etaMinutes,omitempty"`
}

func newTracking(v queries.DonationTracking) Tracking {
	return Tracking{
		Donation:       newDonationSummary(v.Donation),
		Donor:          newParty(&v.Donor),
		Receiver:       newParty(v.Receiver),
		Driver:         newParty(v.Driver),
		ActualPickupAt: v.ActualPickupAt,
		Destination:    newCoordinates(v.Destination),
		DriverDistance: newDistance(v.DriverDistance),
		ETAMinutes:     etaMinutes(v.ETA),
	}
}

// LocationMessage is the data of a driver_location stream event.
type LocationMessage struct {
	Seq            uint64      `json:"seq"`
	DonationID     uuid.UUID   `json:"donationId"`
	DriverID       uuid.UUID   `json:"driverId"`
	DriverLocation Coordinates `json:"driverLocation"`
	ReportedAt     time.Time   `json:"reportedAt"`
}
