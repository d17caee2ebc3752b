package selection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/srisaikitchen/storefront/internal/catalog"
)

func variant(label string, price int64, stock int) catalog.Variant {
	return catalog.Variant{Label: label, Price: decimal.NewFromInt(price), MRP: decimal.NewFromInt(price), Stock: stock}
}

func TestPickDefaultChoosesCheapest(t *testing.T) {
	t.Parallel()

	variants := []catalog.Variant{
		variant("1kg", 500, 10),
		variant("250g", 200, 10),
		variant("500g", 350, 10),
	}
	picked, ok := PickDefault(variants)
	require.True(t, ok)
	require.Equal(t, "250g", picked.Label)
	require.True(t, picked.Price.Equal(decimal.NewFromInt(200)))
}

func TestPickDefaultTieKeepsFirst(t *testing.T) {
	t.Parallel()

	variants := []catalog.Variant{
		variant("a", 200, 10),
		variant("b", 200, 10),
	}
	picked, ok := PickDefault(variants)
	require.True(t, ok)
	require.Equal(t, "a", picked.Label)
}

func TestPickDefaultEmpty(t *testing.T) {
	t.Parallel()

	_, ok := PickDefault(nil)
	require.False(t, ok)
}

func TestSelectorDefaultsToCheapest(t *testing.T) {
	t.Parallel()

	product := catalog.Product{ID: "1", Variants: []catalog.Variant{
		variant("1kg", 500, 10),
		variant("250g", 200, 10),
	}}
	sel := NewSelector(product)
	require.Equal(t, "250g", sel.Current().Label)
	require.True(t, sel.EffectivePrice().Equal(decimal.NewFromInt(200)))
}

func TestSelectOverridesDefault(t *testing.T) {
	t.Parallel()

	product := catalog.Product{ID: "1", Variants: []catalog.Variant{
		variant("250g", 200, 10),
		variant("1kg", 500, 10),
	}}
	sel := NewSelector(product)
	require.True(t, sel.Select(1))
	require.Equal(t, "1kg", sel.Current().Label)
	require.True(t, sel.EffectivePrice().Equal(decimal.NewFromInt(500)))
}

func TestSelectOutOfStockIsNoOp(t *testing.T) {
	t.Parallel()

	product := catalog.Product{ID: "1", Variants: []catalog.Variant{
		variant("250g", 200, 10),
		variant("1kg", 500, 0),
	}}
	sel := NewSelector(product)
	require.False(t, sel.Select(1), "out-of-stock selection must be a no-op")
	require.Equal(t, "250g", sel.Current().Label, "active selection unchanged")
	require.True(t, sel.CanAddToCart())
}

func TestSelectInvalidIndexIsNoOp(t *testing.T) {
	t.Parallel()

	sel := NewSelector(catalog.Product{ID: "1", Variants: []catalog.Variant{variant("250g", 200, 10)}})
	require.False(t, sel.Select(-1))
	require.False(t, sel.Select(5))
	require.Equal(t, "250g", sel.Current().Label)
}

func TestOutOfStockBlocksAdd(t *testing.T) {
	t.Parallel()

	sel := NewSelector(catalog.Product{ID: "1", Variants: []catalog.Variant{variant("250g", 200, 0)}})
	require.False(t, sel.CanAddToCart())
}

func TestSyntheticVariantFromPriceRange(t *testing.T) {
	t.Parallel()

	priceRange := "₹150-300"
	product := catalog.Product{ID: "1", Name: "Plain Podi", PriceRange: &priceRange}

	sel := NewSelector(product)
	current := sel.Current()
	require.Equal(t, SyntheticLabel, current.Label)
	require.True(t, current.Price.Equal(decimal.NewFromInt(150)), "lowest number in the range")
	require.Equal(t, catalog.UnlimitedStock, current.Stock)
	require.Nil(t, current.ID, "synthetic variants carry no backend id")
	require.True(t, sel.CanAddToCart())
}

func TestVariantsOfPrefersStructuredVariants(t *testing.T) {
	t.Parallel()

	product := catalog.Product{ID: "1", Variants: []catalog.Variant{variant("250g", 200, 1)}}
	require.Len(t, VariantsOf(product), 1)
	require.Equal(t, "250g", VariantsOf(product)[0].Label)
}
