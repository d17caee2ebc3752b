package enums

import (
	"fmt"
	"strings"
)

// Category represents the canonical product categories supported by the catalog.
type Category string

const (
	CategoryPickles Category = "pickles"
	CategoryPodulu  Category = "podulu"
	CategorySnacks  Category = "snacks"
	CategoryPulses  Category = "pulses"
)

// CategoryFallback is applied when the backend omits or misspells a category.
const CategoryFallback = CategoryPickles

var validCategories = []Category{
	CategoryPickles,
	CategoryPodulu,
	CategorySnacks,
	CategoryPulses,
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}

// NormalizeCategory lowercases backend input and falls back for unknown values.
func NormalizeCategory(value string) Category {
	parsed, err := ParseCategory(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return CategoryFallback
	}
	return parsed
}

// Categories returns the closed set of categories in display order.
func Categories() []Category {
	out := make([]Category, len(validCategories))
	copy(out, validCategories)
	return out
}
