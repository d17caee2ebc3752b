package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/srisaikitchen/storefront/pkg/enums"
	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
)

type fetcher interface {
	Get(ctx context.Context, path string, out any) error
}

// Directory is a read-only accessor over normalized products.
type Directory struct {
	client fetcher
	logger *logger.Logger
}

// NewDirectory builds a directory backed by the REST client.
func NewDirectory(client fetcher, logg *logger.Logger) (*Directory, error) {
	if client == nil {
		return nil, fmt.Errorf("rest client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Directory{client: client, logger: logg}, nil
}

// ListAll fetches and normalizes the full catalog.
func (d *Directory) ListAll(ctx context.Context) ([]Product, error) {
	var raws []RawProduct
	if err := d.client.Get(ctx, "/products", &raws); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, NormalizeProduct(raw))
	}
	return products, nil
}

// ByCategory filters the catalog locally; the backend has no category endpoint.
func (d *Directory) ByCategory(ctx context.Context, category enums.Category) ([]Product, error) {
	all, err := d.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ByID fetches a single product.
func (d *Directory) ByID(ctx context.Context, id int64) (*Product, error) {
	var raw RawProduct
	if err := d.client.Get(ctx, fmt.Sprintf("/products/%d", id), &raw); err != nil {
		return nil, err
	}
	product := NormalizeProduct(raw)
	return &product, nil
}

// BySlug resolves a product by slug. The direct slug endpoint is not supported
// by every backend deployment, so any failure there falls back to fetching the
// full list and scanning locally. A miss after both tiers is a NotFound error,
// never a crash.
func (d *Directory) BySlug(ctx context.Context, slug string) (*Product, error) {
	var raw RawProduct
	err := d.client.Get(ctx, "/products/slug/"+url.PathEscape(slug), &raw)
	if err == nil {
		product := NormalizeProduct(raw)
		return &product, nil
	}
	d.logger.Debug(d.logger.WithField(ctx, "slug", slug), "slug lookup failed, scanning full list")

	all, listErr := d.ListAll(ctx)
	if listErr != nil {
		return nil, listErr
	}
	for i := range all {
		if all[i].Slug == slug {
			return &all[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", slug))
}
