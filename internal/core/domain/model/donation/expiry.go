package donation

import "time"

const (
	// CookedShelfLife applies to prepared food without a declared expiry.
	CookedShelfLife = 6 * time.Hour
	// PackagedShelfLife applies to sealed goods without a declared expiry.
	PackagedShelfLife = 72 * time.Hour
)

// ShelfLife returns the default lifetime for a product type. Unrecognised
// types get the shorter cooked window.
func ShelfLife(p ProductType) time.Duration {
	if p == Packaged {
		return PackagedShelfLife
	}
	return CookedShelfLife
}

// ComputeExpiry fixes the expiry of a donation at creation. A package
// expiry wins over a user-declared one, and either is used only when it is
// strictly after createdAt. Otherwise the default shelf life for the product
// type applies. The result is always after createdAt.
func ComputeExpiry(createdAt time.Time, productType ProductType, packageExpiry, userExpiry *time.Time) time.Time {
	if packageExpiry != nil && packageExpiry.After(createdAt) {
		return *packageExpiry
	}
	if userExpiry != nil && userExpiry.After(createdAt) {
		return *userExpiry
	}
	return createdAt.Add(ShelfLife(productType))
}
