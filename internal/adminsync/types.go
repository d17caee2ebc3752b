package adminsync

import "github.com/shopspring/decimal"

// VariantEdit is one row of the admin variant editor. A nil ID marks a
// variant added during this edit session and not yet saved to the backend.
type VariantEdit struct {
	ID     *int64
	Weight string
	Price  decimal.Decimal
}

// variantPayload is the wire shape for variant create/update calls.
type variantPayload struct {
	Weight string  `json:"weight"`
	Price  float64 `json:"price"`
}

func payloadFor(edit VariantEdit) variantPayload {
	return variantPayload{Weight: edit.Weight, Price: edit.Price.InexactFloat64()}
}

// AdminVariant is the backend's variant shape on admin responses.
type AdminVariant struct {
	ID     int64   `json:"id"`
	Weight string  `json:"weight"`
	Price  float64 `json:"price"`
}

// AdminProduct is the backend's product shape on admin responses.
type AdminProduct struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description *string        `json:"description,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Ingredients *string        `json:"ingredients,omitempty"`
	ShelfLife   *string        `json:"shelf_life,omitempty"`
	Variants    []AdminVariant `json:"variants"`
}

// ProductCreate creates a product with its variants in one call.
type ProductCreate struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Ingredients *string          `json:"ingredients,omitempty"`
	ShelfLife   *string          `json:"shelf_life,omitempty"`
	Variants    []variantPayload `json:"variants"`
}

// NewProductCreate assembles a create payload from variant edits.
func NewProductCreate(name, category string, edits []VariantEdit) ProductCreate {
	variants := make([]variantPayload, 0, len(edits))
	for _, edit := range edits {
		variants = append(variants, payloadFor(edit))
	}
	return ProductCreate{Name: name, Category: category, Variants: variants}
}

// ProductUpdate patches basic product fields. Nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Ingredients *string `json:"ingredients,omitempty"`
	ShelfLife   *string `json:"shelf_life,omitempty"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID        int64   `json:"id"`
	VariantID int64   `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a placed order as the admin endpoints return it.
type Order struct {
	ID            int64       `json:"id"`
	CustomerName  string      `json:"customer_name"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
}
