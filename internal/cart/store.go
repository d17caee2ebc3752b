package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/srisaikitchen/storefront/internal/catalog"
	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
)

// Store owns the cart state. All cart access goes through it; nothing else
// touches the persisted blob, which keeps the total/item-count derivation
// consistent with the lines. Every mutation persists the full item list.
type Store struct {
	mu      sync.Mutex
	items   []Item
	open    bool
	storage Storage
	logger  *logger.Logger
}

// NewStore builds a cart store over the given persistence backend.
func NewStore(storage Storage, logg *logger.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{storage: storage, logger: logg}, nil
}

// Load restores previously persisted items. A blob that fails to decode means
// starting empty; that is logged, never fatal.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, fmt.Sprintf("failed to restore cart, starting empty: %v", err))
		items = []Item{}
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Add merges the quantity into an existing line with the same identity key,
// or appends a new line. It also flips the cart-open display flag.
func (s *Store) Add(ctx context.Context, product catalog.Product, variant catalog.Variant, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].matches(product.ID, variant.Label) {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{Product: product, Variant: variant, Quantity: quantity})
	}
	s.open = true
	return s.persist(ctx)
}

// Remove deletes every line matching the identity key.
func (s *Store) Remove(ctx context.Context, productID, variantLabel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID, variantLabel)
	return s.persist(ctx)
}

// UpdateQuantity replaces the quantity on matching lines. A quantity of zero
// or less removes the line entirely.
func (s *Store) UpdateQuantity(ctx context.Context, productID, variantLabel string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID, variantLabel)
		return s.persist(ctx)
	}
	for i := range s.items {
		if s.items[i].matches(productID, variantLabel) {
			s.items[i].Quantity = quantity
		}
	}
	return s.persist(ctx)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist(ctx)
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total recomputes the cart total from the lines on every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount recomputes the summed quantities on every call.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// IsOpen reports the session display flag. It is never persisted.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Open sets the cart-open display flag.
func (s *Store) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

// Close clears the cart-open display flag.
func (s *Store) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

func (s *Store) removeLocked(productID, variantLabel string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if !item.matches(productID, variantLabel) {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// persist serializes the full item list. The in-memory mutation stays applied
// even when the write fails; the caller decides how to surface the error.
func (s *Store) persist(ctx context.Context) error {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	if err := s.storage.Save(ctx, items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting cart")
	}
	return nil
}
