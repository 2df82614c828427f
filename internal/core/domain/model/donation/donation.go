package donation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"
	"foodloop/internal/pkg/guard"
)

var (
	// ErrDonationIsNotConstructed is returned when a Donation was not built by
	// NewDonation or RestoreDonation.
	ErrDonationIsNotConstructed = errors.New("Donation must be created via NewDonation constructor")
	// ErrItemNameIsRequired is returned for a blank item name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("item name")
	// ErrDonorAddressIsRequired is returned when the donor has no address on file.
	ErrDonorAddressIsRequired = errs.NewValueIsRequiredError("donor address")
)

// Draft holds the donor-supplied fields of a new donation. Coordinates are
// resolved by the caller before construction; DonorLocation may be nil.
type Draft struct {
	ID             kernel.UUID
	DonorID        kernel.UUID
	Category       Category
	ItemName       string
	Quantity       int
	Storage        Storage
	ImageRef       string
	Assessment     Assessment
	DonorAddress   string
	DonorLocation  *kernel.GeoPoint
	PickupWindow   PickupWindow
	PickupTimeSlot string
	// ProductType defaults to Category.DefaultProductType when empty.
	ProductType   ProductType
	PackageExpiry *time.Time
	UserExpiry    *time.Time
}

// Donation is the aggregate root of the handoff. All state changes go through
// the guarded transitions in transitions.go.
//
// Invariants:
//   - receiverID is set iff status is assigned, picked_up or delivered
//   - driverID and actualPickupAt are set iff status is picked_up or delivered
//   - once set, receiverID and driverID never change
//   - expiresAt is fixed at creation and strictly after createdAt
//
// Cancelled donations keep the assignments they held when cancelled.
type Donation struct {
	id             kernel.UUID
	trackingID     string
	donorID        kernel.UUID
	category       Category
	itemName       string
	quantity       int
	storage        Storage
	imageRef       string
	assessment     Assessment
	donorAddress   string
	donorLocation  *kernel.GeoPoint
	pickupWindow   PickupWindow
	pickupTimeSlot string
	productType    ProductType
	actualPickupAt *time.Time
	expiresAt      time.Time
	status         Status
	receiverID     *kernel.UUID
	driverID       *kernel.UUID
	createdAt      time.Time
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// NewDonation validates a draft and returns a pending donation with its
// expiry computed from createdAt.
//
// Example:
//
//	d, err := donation.NewDonation(draft, trackingID, time.Now())
//	if err != nil {
//	    return err // errors.Is(err, errs.ErrValidationFailed)
//	}
func NewDonation(draft Draft, trackingID string, createdAt time.Time) (*Donation, error) {
	d := &Donation{
		status:         Pending,
		imageRef:       strings.TrimSpace(draft.ImageRef),
		pickupTimeSlot: strings.TrimSpace(draft.PickupTimeSlot),
		assessment:     draft.Assessment,
		donorLocation:  draft.DonorLocation,
		createdAt:      createdAt,
		updatedAt:      createdAt,
		guard:          guard.NewConstructorGuard(),
	}

	productType := draft.ProductType
	if productType == "" {
		productType = draft.Category.DefaultProductType()
	}

	if err := errors.Join(
		d.setID(draft.ID),
		d.setTrackingID(trackingID),
		d.setDonorID(draft.DonorID),
		d.setCategory(draft.Category),
		d.setItemName(draft.ItemName),
		d.setQuantity(draft.Quantity),
		d.setStorage(draft.Storage),
		d.setDonorAddress(draft.DonorAddress),
		d.setPickupWindow(draft.PickupWindow),
		d.setProductType(productType),
		validateOptionalPoint(draft.DonorLocation),
	); err != nil {
		return nil, err
	}

	d.expiresAt = ComputeExpiry(createdAt, d.productType, draft.PackageExpiry, draft.UserExpiry)
	return d, nil
}

// Snapshot is the flat persistence form of a Donation. Stores map it to
// their own records and hand it back to RestoreDonation.
type Snapshot struct {
	ID             kernel.UUID
	TrackingID     string
	DonorID        kernel.UUID
	Category       Category
	ItemName       string
	Quantity       int
	Storage        Storage
	ImageRef       string
	Assessment     Assessment
	DonorAddress   string
	DonorLocation  *kernel.GeoPoint
	PickupWindow   PickupWindow
	PickupTimeSlot string
	ProductType    ProductType
	ActualPickupAt *time.Time
	ExpiresAt      time.Time
	Status         Status
	ReceiverID     *kernel.UUID
	DriverID       *kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreDonation rebuilds a donation read from a store, checking every
// field and the status/assignment invariants.
func RestoreDonation(s Snapshot) (*Donation, error) {
	d := &Donation{
		imageRef:       s.ImageRef,
		assessment:     s.Assessment,
		donorLocation:  s.DonorLocation,
		pickupTimeSlot: s.PickupTimeSlot,
		actualPickupAt: s.ActualPickupAt,
		expiresAt:      s.ExpiresAt,
		status:         s.Status,
		receiverID:     s.ReceiverID,
		driverID:       s.DriverID,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setTrackingID(s.TrackingID),
		d.setDonorID(s.DonorID),
		d.setCategory(s.Category),
		d.setItemName(s.ItemName),
		d.setQuantity(s.Quantity),
		d.setStorage(s.Storage),
		d.setDonorAddress(s.DonorAddress),
		d.setPickupWindow(s.PickupWindow),
		d.setProductType(s.ProductType),
		validateOptionalPoint(s.DonorLocation),
		s.Status.Validate(),
		validateOptionalID("assigned receiver", s.ReceiverID),
		validateOptionalID("assigned driver", s.DriverID),
	); err != nil {
		return nil, err
	}

	if !s.ExpiresAt.After(s.CreatedAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause("expires at",
			fmt.Errorf("%s is not after creation time %s", s.ExpiresAt, s.CreatedAt))
	}
	if err := s.Status.ValidateAssignments(s.ReceiverID != nil, s.DriverID != nil, s.ActualPickupAt != nil); err != nil {
		return nil, err
	}

	return d, nil
}

// Snapshot returns the flat form of the donation for persistence.
func (d *Donation) Snapshot() Snapshot {
	return Snapshot{
		ID:             d.id,
		TrackingID:     d.trackingID,
		DonorID:        d.donorID,
		Category:       d.category,
		ItemName:       d.itemName,
		Quantity:       d.quantity,
		Storage:        d.storage,
		ImageRef:       d.imageRef,
		Assessment:     d.assessment,
		DonorAddress:   d.donorAddress,
		DonorLocation:  d.DonorLocation(),
		PickupWindow:   d.pickupWindow,
		PickupTimeSlot: d.pickupTimeSlot,
		ProductType:    d.productType,
		ActualPickupAt: d.ActualPickupAt(),
		ExpiresAt:      d.expiresAt,
		Status:         d.status,
		ReceiverID:     d.ReceiverID(),
		DriverID:       d.DriverID(),
		CreatedAt:      d.createdAt,
		UpdatedAt:      d.updatedAt,
	}
}

// Validate returns ErrDonationIsNotConstructed for a nil or zero donation.
func (d *Donation) Validate() error {
	if d == nil {
		return ErrDonationIsNotConstructed
	}
	return d.guard.Validate(ErrDonationIsNotConstructed)
}

// IsEqual compares donations by identity.
func (d *Donation) IsEqual(other *Donation) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Donation) ID() kernel.UUID {
	return d.id
}

func (d *Donation) TrackingID() string {
	return d.trackingID
}

func (d *Donation) DonorID() kernel.UUID {
	return d.donorID
}

func (d *Donation) Category() Category {
	return d.category
}

func (d *Donation) ItemName() string {
	return d.itemName
}

func (d *Donation) Quantity() int {
	return d.quantity
}

func (d *Donation) Storage() Storage {
	return d.storage
}

func (d *Donation) ImageRef() string {
	return d.imageRef
}

func (d *Donation) Assessment() Assessment {
	return d.assessment
}

func (d *Donation) DonorAddress() string {
	return d.donorAddress
}

func (d *Donation) PickupWindow() PickupWindow {
	return d.pickupWindow
}

func (d *Donation) PickupTimeSlot() string {
	return d.pickupTimeSlot
}

func (d *Donation) ProductType() ProductType {
	return d.productType
}

func (d *Donation) ExpiresAt() time.Time {
	return d.expiresAt
}

func (d *Donation) Status() Status {
	return d.status
}

func (d *Donation) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Donation) UpdatedAt() time.Time {
	return d.updatedAt
}

// DonorLocation returns a copy of the pickup coordinates, or nil when they
// are unknown.
func (d *Donation) DonorLocation() *kernel.GeoPoint {
	if d.donorLocation == nil {
		return nil
	}
	p := *d.donorLocation
	return &p
}

// ActualPickupAt is nil until a driver confirms the pickup.
func (d *Donation) ActualPickupAt() *time.Time {
	if d.actualPickupAt == nil {
		return nil
	}
	t := *d.actualPickupAt
	return &t
}

// ReceiverID is nil until the donation is claimed.
func (d *Donation) ReceiverID() *kernel.UUID {
	if d.receiverID == nil {
		return nil
	}
	id := *d.receiverID
	return &id
}

// DriverID is nil until a driver confirms the pickup.
func (d *Donation) DriverID() *kernel.UUID {
	if d.driverID == nil {
		return nil
	}
	id := *d.driverID
	return &id
}

func (d *Donation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Donation) setTrackingID(trackingID string) error {
	if err := ValidateTrackingID(trackingID); err != nil {
		return err
	}
	d.trackingID = trackingID
	return nil
}

func (d *Donation) setDonorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("donor id", err)
	}
	d.donorID = id
	return nil
}

func (d *Donation) setCategory(c Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	d.category = c
	return nil
}

func (d *Donation) setItemName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrItemNameIsRequired
	}
	d.itemName = name
	return nil
}

func (d *Donation) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	d.quantity = quantity
	return nil
}

func (d *Donation) setStorage(s Storage) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.storage = s
	return nil
}

func (d *Donation) setDonorAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrDonorAddressIsRequired
	}
	d.donorAddress = address
	return nil
}

func (d *Donation) setPickupWindow(w PickupWindow) error {
	if err := w.Validate(); err != nil {
		return err
	}
	d.pickupWindow = w
	return nil
}

func (d *Donation) setProductType(p ProductType) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.productType = p
	return nil
}

func validateOptionalPoint(p *kernel.GeoPoint) error {
	if p == nil {
		return nil
	}
	return p.Validate()
}

func validateOptionalID(param string, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return nil
}
