package cart

import (
	"github.com/shopspring/decimal"

	"github.com/srisaikitchen/storefront/internal/catalog"
)

// Item is one cart line: a product snapshot, the chosen variant snapshot, and
// a quantity. Snapshots are taken at add time; later catalog changes do not
// rewrite existing lines.
type Item struct {
	Product  catalog.Product `json:"product"`
	Variant  catalog.Variant `json:"variant"`
	Quantity int             `json:"quantity"`
}

// matches reports whether the line has the given identity key. Lines are
// keyed by (product id, variant label), not variant id: two variants sharing
// a label would collide, a known weakness kept deliberately.
func (i Item) matches(productID, variantLabel string) bool {
	return i.Product.ID == productID && i.Variant.Label == variantLabel
}

// LineTotal is the variant price multiplied by the quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Variant.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
