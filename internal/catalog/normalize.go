package catalog

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/srisaikitchen/storefront/pkg/enums"
)

// NormalizeVariant converts a raw backend variant into the canonical shape.
// Missing fields resolve to defaults; it never fails.
func NormalizeVariant(raw RawVariant) Variant {
	label := ""
	if raw.Weight != nil && strings.TrimSpace(*raw.Weight) != "" {
		label = strings.TrimSpace(*raw.Weight)
	} else if raw.ID != nil {
		label = strconv.FormatInt(*raw.ID, 10)
	}

	price := decimal.Zero
	if raw.Price != nil {
		price = decimal.NewFromFloat(*raw.Price)
	}
	mrp := price
	if raw.MRP != nil {
		mrp = decimal.NewFromFloat(*raw.MRP)
	}

	// Stock absent means the backend does not track it: effectively unlimited.
	stock := UnlimitedStock
	if raw.Stock != nil {
		stock = *raw.Stock
	}

	return Variant{
		ID:          raw.ID,
		Label:       label,
		WeightGrams: ParseWeightGrams(label),
		Price:       price,
		MRP:         mrp,
		Stock:       stock,
	}
}

// NormalizeProduct converts a raw backend product into the canonical shape.
// Every optional field has a documented default; it never fails.
func NormalizeProduct(raw RawProduct) Product {
	slug := ""
	if raw.Slug != nil && strings.TrimSpace(*raw.Slug) != "" {
		slug = *raw.Slug
	} else {
		slug = Slugify(raw.Name)
	}

	category := enums.CategoryFallback
	if raw.Category != nil {
		category = enums.NormalizeCategory(*raw.Category)
	}

	description := ""
	if raw.Description != nil {
		description = *raw.Description
	}

	images := []string{PlaceholderImage}
	if raw.ImageURL != nil && strings.TrimSpace(*raw.ImageURL) != "" {
		images = []string{*raw.ImageURL}
	}

	variants := make([]Variant, 0, len(raw.Variants))
	for _, rv := range raw.Variants {
		variants = append(variants, NormalizeVariant(rv))
	}
	// Cheapest first; stable so equal prices keep backend order.
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Price.LessThan(variants[j].Price)
	})

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	ingredients := []string(raw.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}

	var spiceLevel *enums.SpiceLevel
	if raw.SpiceLevel != nil {
		if parsed, err := enums.ParseSpiceLevel(strings.ToLower(strings.TrimSpace(*raw.SpiceLevel))); err == nil {
			spiceLevel = &parsed
		}
	}

	return Product{
		ID:           strconv.FormatInt(raw.ID, 10),
		Name:         raw.Name,
		Slug:         slug,
		Category:     category,
		Description:  description,
		Images:       images,
		Variants:     variants,
		Tags:         tags,
		Ingredients:  ingredients,
		Origin:       raw.Origin,
		ShelfLife:    raw.ShelfLife,
		Weight:       raw.Weight,
		PriceRange:   raw.PriceRange,
		SpiceLevel:   spiceLevel,
		IsBestseller: raw.IsBestseller != nil && *raw.IsBestseller,
	}
}

// Slugify derives a URL-stable identifier from a product name: lowercased,
// whitespace runs replaced by single hyphens. Deterministic for a given name
// but not globally unique when two products share one.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// ParseWeightGrams extracts the numeric grams from a weight label such as
// "250g" or "1,000 g" by stripping non-digit characters. Unparseable labels
// yield 0.
func ParseWeightGrams(label string) int {
	var digits strings.Builder
	for _, r := range label {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	grams, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return grams
}

// FirstPriceIn extracts the first number from a free-text price range such as
// "₹150-300" or "Rs. 1,500 to 3,000", tolerating currency symbols and digit
// separators. The boolean reports whether a number was found.
func FirstPriceIn(s string) (decimal.Decimal, bool) {
	var digits strings.Builder
	seen := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
			seen = true
		case r == ',' && seen:
			// separator inside a number, skip
		default:
			if seen {
				return mustDecimal(digits.String()), true
			}
		}
	}
	if seen {
		return mustDecimal(digits.String()), true
	}
	return decimal.Zero, false
}

func mustDecimal(digits string) decimal.Decimal {
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return d
}
