// Package selection decides which product variant is active on a product
// view: the cheapest by default, a user choice once one is made, with
// out-of-stock options viewable but never activatable.
package selection

import (
	"github.com/shopspring/decimal"

	"github.com/srisaikitchen/storefront/internal/catalog"
)

// SyntheticLabel names the variant constructed for products that carry no
// structured variants of their own.
const SyntheticLabel = "default"

// PickDefault returns the variant with the minimum price. Normalization
// already sorts variants cheapest-first, but callers may pass unsorted lists,
// so the minimum is recomputed here rather than assumed to sit at index 0.
// Ties keep the first occurrence. The boolean is false for an empty list.
func PickDefault(variants []catalog.Variant) (catalog.Variant, bool) {
	if len(variants) == 0 {
		return catalog.Variant{}, false
	}
	best := 0
	for i := 1; i < len(variants); i++ {
		if variants[i].Price.LessThan(variants[best].Price) {
			best = i
		}
	}
	return variants[best], true
}

// Synthetic builds a single stand-in variant from a product's scalar price
// fields so cart and checkout can treat variant-less products uniformly.
func Synthetic(product catalog.Product) catalog.Variant {
	price := decimal.Zero
	if product.PriceRange != nil {
		if parsed, ok := catalog.FirstPriceIn(*product.PriceRange); ok {
			price = parsed
		}
	}
	return catalog.Variant{
		Label:       SyntheticLabel,
		WeightGrams: 0,
		Price:       price,
		MRP:         price,
		Stock:       catalog.UnlimitedStock,
	}
}

// VariantsOf returns the product's variants, or a single synthetic variant
// when it has none.
func VariantsOf(product catalog.Product) []catalog.Variant {
	if len(product.Variants) > 0 {
		return product.Variants
	}
	return []catalog.Variant{Synthetic(product)}
}

// Selector tracks the active variant for one product view.
type Selector struct {
	variants []catalog.Variant
	selected int
}

// NewSelector builds a selector with the cheapest variant pre-selected.
// Variant-less products get the synthetic default.
func NewSelector(product catalog.Product) *Selector {
	variants := VariantsOf(product)
	selected := 0
	for i := 1; i < len(variants); i++ {
		if variants[i].Price.LessThan(variants[selected].Price) {
			selected = i
		}
	}
	return &Selector{variants: variants, selected: selected}
}

// Variants lists the selectable options in display order.
func (s *Selector) Variants() []catalog.Variant {
	out := make([]catalog.Variant, len(s.variants))
	copy(out, s.variants)
	return out
}

// Select makes the variant at index the active one. Selecting an out-of-stock
// variant or an invalid index is a no-op, not an error; the return reports
// whether the selection changed.
func (s *Selector) Select(index int) bool {
	if index < 0 || index >= len(s.variants) {
		return false
	}
	if !s.variants[index].InStock() {
		return false
	}
	s.selected = index
	return true
}

// Current returns the active variant.
func (s *Selector) Current() catalog.Variant {
	return s.variants[s.selected]
}

// EffectivePrice is the price of the active variant.
func (s *Selector) EffectivePrice() decimal.Decimal {
	return s.Current().Price
}

// CanAddToCart reports whether the active variant may be added to the cart.
// Out-of-stock variants stay viewable but block the add action.
func (s *Selector) CanAddToCart() bool {
	return s.Current().InStock()
}
