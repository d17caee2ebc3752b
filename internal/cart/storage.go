package cart

import "context"

// Storage persists the full cart item list as one serialized blob under a
// fixed key. Writers are last-write-wins: two processes sharing a backend can
// silently overwrite each other, a documented limitation of the design.
type Storage interface {
	// Load returns the persisted items, or an empty list when nothing has
	// been stored yet.
	Load(ctx context.Context) ([]Item, error)
	// Save replaces the persisted items wholesale.
	Save(ctx context.Context, items []Item) error
}
