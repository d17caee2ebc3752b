package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/srisaikitchen/storefront/pkg/config"
	"github.com/srisaikitchen/storefront/pkg/enums"
	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
	"github.com/srisaikitchen/storefront/pkg/rest"
)

const catalogJSON = `[
	{"id":1,"name":"Mango Pickle","category":"Pickles","variants":[{"id":11,"weight":"250g","price":150},{"id":12,"weight":"500g","price":280}]},
	{"id":2,"name":"Kandi Podi","category":"podulu","variants":[{"id":21,"weight":"250g","price":120}]},
	{"id":3,"name":"Chekka Pakodi","category":"snacks"}
]`

func newTestDirectory(t *testing.T, handler http.Handler) *Directory {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test"})
	client, err := rest.NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, logg)
	require.NoError(t, err)
	dir, err := NewDirectory(client, logg)
	require.NoError(t, err)
	return dir
}

func TestListAllNormalizes(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(catalogJSON))
	}))

	products, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, "mango-pickle", products[0].Slug)
	require.Equal(t, enums.CategoryPickles, products[0].Category)
	require.Equal(t, "250g", products[0].Variants[0].Label)
}

func TestByCategoryFiltersLocally(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogJSON))
	}))

	products, err := dir.ByCategory(context.Background(), enums.CategoryPodulu)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Kandi Podi", products[0].Name)
}

func TestBySlugDirectLookup(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/slug/mango-pickle", r.URL.Path)
		w.Write([]byte(`{"id":1,"name":"Mango Pickle","category":"pickles"}`))
	}))

	p, err := dir.BySlug(context.Background(), "mango-pickle")
	require.NoError(t, err)
	require.Equal(t, "1", p.ID)
}

func TestBySlugFallsBackToListScan(t *testing.T) {
	var slugCalls, listCalls int
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			listCalls++
			w.Write([]byte(catalogJSON))
		default:
			slugCalls++
			http.Error(w, "slug lookups unsupported", http.StatusNotFound)
		}
	}))

	p, err := dir.BySlug(context.Background(), "kandi-podi")
	require.NoError(t, err)
	require.Equal(t, "Kandi Podi", p.Name)
	require.Equal(t, 1, slugCalls)
	require.Equal(t, 1, listCalls)
}

func TestBySlugNotFoundAfterBothTiers(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products" {
			w.Write([]byte(catalogJSON))
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := dir.BySlug(context.Background(), "no-such-product")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestByIDPropagatesNotFound(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Product not found"}`, http.StatusNotFound)
	}))

	_, err := dir.ByID(context.Background(), 99)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
