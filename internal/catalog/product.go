package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/srisaikitchen/storefront/pkg/enums"
)

// PlaceholderImage is shown when a product carries no image of its own.
const PlaceholderImage = "/placeholder.svg"

// UnlimitedStock marks variants whose stock the backend does not track.
const UnlimitedStock = 999

// Variant is a purchasable size option of a product.
type Variant struct {
	// ID is the backend identifier. Variants that exist only in local state,
	// such as unsaved admin entries, have none.
	ID          *int64          `json:"id,omitempty"`
	Label       string          `json:"label"`
	WeightGrams int             `json:"weight_grams"`
	Price       decimal.Decimal `json:"price"`
	MRP         decimal.Decimal `json:"mrp"`
	Stock       int             `json:"stock"`
}

// InStock reports whether the variant can currently be purchased.
func (v Variant) InStock() bool {
	return v.Stock > 0
}

// Discounted reports whether the variant sells below its listed MRP.
func (v Variant) Discounted() bool {
	return v.MRP.GreaterThan(v.Price)
}

// Product is the canonical shape used everywhere downstream of normalization.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Category    enums.Category `json:"category"`
	Description string         `json:"description"`
	Images      []string       `json:"images"`
	// Variants are sorted ascending by price at normalization time. Consumers
	// must not rely on that ordering for default selection; see selection.
	Variants    []Variant `json:"variants"`
	Tags        []string  `json:"tags"`
	Ingredients []string  `json:"ingredients"`

	Origin       *string           `json:"origin,omitempty"`
	ShelfLife    *string           `json:"shelf_life,omitempty"`
	Weight       *string           `json:"weight,omitempty"`
	PriceRange   *string           `json:"price_range,omitempty"`
	SpiceLevel   *enums.SpiceLevel `json:"spice_level,omitempty"`
	IsBestseller bool              `json:"is_bestseller"`
}
