package adminsync

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
)

type apiClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Service synchronizes admin edits with the backend.
type Service struct {
	client apiClient
	logger *logger.Logger
}

// NewService builds an admin sync service.
func NewService(client apiClient, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("rest client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{client: client, logger: logg}, nil
}

// SyncReport summarizes one reconciliation run.
type SyncReport struct {
	Deleted []int64
	Updated []int64
	Created []int64
	// DeleteFailures aggregates soft-failed deletions; the sync itself still
	// counts as successful when only deletions failed.
	DeleteFailures error
}

// SyncVariants reconciles the edited variant list against the backend.
// originalIDs is the set of backend ids captured when the edit session began.
// Deletions run first, each one best-effort: a failed delete is logged and the
// loop continues. Create/update calls then run sequentially, and the first
// failure aborts the remaining steps, leaving the backend possibly partial.
// A broken save needs visibility, a stale variant does not.
//
// Rule: an edit with an id is updated, one without is created. The original
// id set only drives deletions, so an id present in the edits but absent from
// originalIDs is still treated as an update.
func (s *Service) SyncVariants(ctx context.Context, productID int64, originalIDs []int64, edits []VariantEdit) (SyncReport, error) {
	report := SyncReport{}
	ctx = s.logger.WithProductID(ctx, fmt.Sprintf("%d", productID))

	kept := make(map[int64]struct{}, len(edits))
	for _, edit := range edits {
		if edit.ID != nil {
			kept[*edit.ID] = struct{}{}
		}
	}

	for _, id := range originalIDs {
		if _, ok := kept[id]; ok {
			continue
		}
		if err := s.client.Delete(ctx, fmt.Sprintf("/admin/variants/%d", id)); err != nil {
			s.logger.Warn(ctx, fmt.Sprintf("failed to delete variant %d: %v", id, err))
			report.DeleteFailures = multierr.Append(report.DeleteFailures, fmt.Errorf("variant %d: %w", id, err))
			continue
		}
		report.Deleted = append(report.Deleted, id)
	}

	for _, edit := range edits {
		if edit.ID != nil {
			if err := s.client.Patch(ctx, fmt.Sprintf("/admin/variants/%d", *edit.ID), payloadFor(edit), nil); err != nil {
				return report, pkgerrors.Wrap(pkgerrors.As(err).Code(), err, fmt.Sprintf("updating variant %d", *edit.ID))
			}
			report.Updated = append(report.Updated, *edit.ID)
			continue
		}
		var created AdminVariant
		if err := s.client.Post(ctx, fmt.Sprintf("/admin/products/%d/variants", productID), payloadFor(edit), &created); err != nil {
			return report, pkgerrors.Wrap(pkgerrors.As(err).Code(), err, fmt.Sprintf("creating variant %q", edit.Weight))
		}
		report.Created = append(report.Created, created.ID)
	}

	return report, nil
}

// CreateProduct creates a product with its variants in one call.
func (s *Service) CreateProduct(ctx context.Context, input ProductCreate) (*AdminProduct, error) {
	var created AdminProduct
	if err := s.client.Post(ctx, "/admin/products", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct patches basic product fields.
func (s *Service) UpdateProduct(ctx context.Context, productID int64, input ProductUpdate) (*AdminProduct, error) {
	var updated AdminProduct
	if err := s.client.Patch(ctx, fmt.Sprintf("/admin/products/%d", productID), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product and its variants.
func (s *Service) DeleteProduct(ctx context.Context, productID int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/admin/products/%d", productID))
}

// ListProducts fetches the raw admin product list.
func (s *Service) ListProducts(ctx context.Context) ([]AdminProduct, error) {
	var products []AdminProduct
	if err := s.client.Get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListOrders pages through placed orders, newest first.
func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]Order, error) {
	var orders []Order
	path := fmt.Sprintf("/admin/orders?limit=%d&offset=%d", limit, offset)
	if err := s.client.Get(ctx, path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
