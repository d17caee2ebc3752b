package catalog

import (
	"encoding/json"
	"strings"
)

// RawVariant mirrors the backend variant payload. Every field besides the id
// has shipped as absent or null at some point, so all are optional here.
type RawVariant struct {
	ID     *int64   `json:"id"`
	Weight *string  `json:"weight"`
	Price  *float64 `json:"price"`
	MRP    *float64 `json:"mrp"`
	Stock  *int     `json:"stock"`
}

// RawProduct mirrors the backend product payload.
type RawProduct struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Slug         *string      `json:"slug"`
	Category     *string      `json:"category"`
	Description  *string      `json:"description"`
	ImageURL     *string      `json:"image_url"`
	Origin       *string      `json:"origin"`
	ShelfLife    *string      `json:"shelf_life"`
	Weight       *string      `json:"weight"`
	PriceRange   *string      `json:"price_range"`
	Tags         []string     `json:"tags"`
	SpiceLevel   *string      `json:"spice_level"`
	Ingredients  StringList   `json:"ingredients"`
	IsBestseller *bool        `json:"is_bestseller"`
	Variants     []RawVariant `json:"variants"`
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string. The backend has returned ingredients both ways.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*l = out
	return nil
}
