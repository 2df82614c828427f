package donation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"foodloop/internal/pkg/errs"
)

// Category classifies what is being donated.
type Category string

const (
	CookedMeals Category = "CookedMeals"
	RawFood     Category = "RawFood"
	Beverages   Category = "Beverages"
	Snacks      Category = "Snacks"
	Desserts    Category = "Desserts"
)

// Categories lists every accepted category in display order.
func Categories() []Category {
	return []Category{CookedMeals, RawFood, Beverages, Snacks, Desserts}
}

func ParseCategory(s string) (Category, error) {
	return parseEnum("category", s, Categories())
}

func (c Category) Validate() error {
	_, err := ParseCategory(string(c))
	return err
}

// DefaultProductType is the shelf-life class assumed when the donor does not
// state one.
func (c Category) DefaultProductType() ProductType {
	switch c {
	case Beverages, Snacks:
		return Packaged
	default:
		return Cooked
	}
}

// Storage is how the item must be kept until pickup.
type Storage string

const (
	Hot  Storage = "Hot"
	Cold Storage = "Cold"
	Dry  Storage = "Dry"
)

func Storages() []Storage {
	return []Storage{Hot, Cold, Dry}
}

func ParseStorage(s string) (Storage, error) {
	return parseEnum("storage", s, Storages())
}

func (s Storage) Validate() error {
	_, err := ParseStorage(string(s))
	return err
}

// Freshness is the label produced by the image assessment. The empty value
// means no label was produced.
type Freshness string

const (
	FreshnessNone Freshness = ""
	Fresh         Freshness = "Fresh"
	Good          Freshness = "Good"
	Fair          Freshness = "Fair"
)

func Freshnesses() []Freshness {
	return []Freshness{Fresh, Good, Fair}
}

// ParseFreshness maps a blank string to FreshnessNone.
func ParseFreshness(s string) (Freshness, error) {
	if strings.TrimSpace(s) == "" {
		return FreshnessNone, nil
	}
	return parseEnum("freshness", s, Freshnesses())
}

func (f Freshness) Validate() error {
	_, err := ParseFreshness(string(f))
	return err
}

// PickupWindow is the symbolic day the donor prefers the pickup on.
type PickupWindow string

const (
	Today    PickupWindow = "today"
	Tomorrow PickupWindow = "tomorrow"
)

func PickupWindows() []PickupWindow {
	return []PickupWindow{Today, Tomorrow}
}

func ParsePickupWindow(s string) (PickupWindow, error) {
	return parseEnum("pickup window", s, PickupWindows())
}

func (w PickupWindow) Validate() error {
	_, err := ParsePickupWindow(string(w))
	return err
}

// Date resolves the window against the day the donation was created, in
// the timezone of createdAt.
func (w PickupWindow) Date(createdAt time.Time) time.Time {
	y, m, d := createdAt.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, createdAt.Location())
	if w == Tomorrow {
		return day.AddDate(0, 0, 1)
	}
	return day
}

// ProductType selects the default shelf life.
type ProductType string

const (
	Cooked   ProductType = "cooked"
	Packaged ProductType = "packaged"
)

func ProductTypes() []ProductType {
	return []ProductType{Cooked, Packaged}
}

func ParseProductType(s string) (ProductType, error) {
	return parseEnum("product type", s, ProductTypes())
}

func (p ProductType) Validate() error {
	_, err := ParseProductType(string(p))
	return err
}

// parseEnum matches s case-insensitively against allowed and returns the
// canonical spelling.
func parseEnum[T ~string](param, s string, allowed []T) (T, error) {
	needle := strings.TrimSpace(s)
	idx := slices.IndexFunc(allowed, func(v T) bool {
		return strings.EqualFold(string(v), needle)
	})
	if idx < 0 {
		var zero T
		return zero, errs.NewValueIsInvalidErrorWithCause(param,
			fmt.Errorf("%q is not one of %v", s, allowed))
	}
	return allowed[idx], nil
}
