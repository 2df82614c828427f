package commands

import (
	"errors"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/guard"
)

var ErrCreateDonationCommandIsNotConstructed = errors.New(
	"CreateDonationCommand must be created via NewCreateDonationCommand constructor",
)

// CreateDonationParams is the raw donor input. Enum fields are matched
// case-insensitively; blank optional fields mean absent.
type CreateDonationParams struct {
	DonorID         kernel.UUID
	Category        string
	ItemName        string
	Quantity        int
	Storage         string
	ImageRef        string
	ConfidenceScore *float64
	QualityScore    *float64
	Freshness       string
	DetectedItems   []string
	PickupWindow    string
	PickupTimeSlot  string
	ProductType     string
	PackageExpiry   *time.Time
	UserExpiry      *time.Time
	Latitude        *float64
	Longitude       *float64
}

// CreateDonationCommand is a validated donation draft minus the fields the
// handler derives: id, tracking id, expiry and resolved coordinates.
type CreateDonationCommand struct {
	donorID        kernel.UUID
	category       donation.Category
	itemName       string
	quantity       int
	storage        donation.Storage
	imageRef       string
	assessment     donation.Assessment
	pickupWindow   donation.PickupWindow
	pickupTimeSlot string
	productType    donation.ProductType
	packageExpiry  *time.Time
	userExpiry     *time.Time
	location       *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateDonationCommand parses and validates p, joining every problem
// into one error.
func NewCreateDonationCommand(p CreateDonationParams) (CreateDonationCommand, error) {
	category, categoryErr := donation.ParseCategory(p.Category)
	storage, storageErr := donation.ParseStorage(p.Storage)
	window, windowErr := donation.ParsePickupWindow(p.PickupWindow)
	location, locationErr := kernel.NewGeoPointPtr(p.Latitude, p.Longitude)

	var productType donation.ProductType
	var productErr error
	if p.ProductType != "" {
		productType, productErr = donation.ParseProductType(p.ProductType)
	}

	var assessment donation.Assessment
	freshness, assessmentErr := donation.ParseFreshness(p.Freshness)
	if assessmentErr == nil {
		assessment, assessmentErr = donation.NewAssessment(p.ConfidenceScore, p.QualityScore, freshness, p.DetectedItems)
	}

	if err := errors.Join(
		requireID("donor id", p.DonorID),
		categoryErr,
		storageErr,
		windowErr,
		productErr,
		assessmentErr,
		locationErr,
		validateQuantity(p.Quantity),
	); err != nil {
		return CreateDonationCommand{}, err
	}

	return CreateDonationCommand{
		donorID:        p.DonorID,
		category:       category,
		itemName:       p.ItemName,
		quantity:       p.Quantity,
		storage:        storage,
		imageRef:       p.ImageRef,
		assessment:     assessment,
		pickupWindow:   window,
		pickupTimeSlot: p.PickupTimeSlot,
		productType:    productType,
		packageExpiry:  p.PackageExpiry,
		userExpiry:     p.UserExpiry,
		location:       location,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDonationCommand) Validate() error {
	return c.guard.Validate(ErrCreateDonationCommandIsNotConstructed)
}

func (c CreateDonationCommand) DonorID() kernel.UUID {
	return c.donorID
}

// Location is the donor-supplied pickup point, or nil.
func (c CreateDonationCommand) Location() *kernel.GeoPoint {
	return c.location
}

// draft fills in everything the command knows about the donation.
func (c CreateDonationCommand) draft(
	id kernel.UUID,
	donorAddress string,
	location *kernel.GeoPoint,
) donation.Draft {
	return donation.Draft{
		ID:             id,
		DonorID:        c.donorID,
		Category:       c.category,
		ItemName:       c.itemName,
		Quantity:       c.quantity,
		Storage:        c.storage,
		ImageRef:       c.imageRef,
		Assessment:     c.assessment,
		DonorAddress:   donorAddress,
		DonorLocation:  location,
		PickupWindow:   c.pickupWindow,
		PickupTimeSlot: c.pickupTimeSlot,
		ProductType:    c.productType,
		PackageExpiry:  c.packageExpiry,
		UserExpiry:     c.userExpiry,
	}
}
