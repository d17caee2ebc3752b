package adminsync

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
)

// call records one API invocation in order.
type call struct {
	method string
	path   string
}

type stubClient struct {
	calls      []call
	deleteErrs map[string]error
	patchErrs  map[string]error
	postErrs   map[string]error
	getBody    string
	nextID     int64
}

func (s *stubClient) Get(ctx context.Context, path string, out any) error {
	s.calls = append(s.calls, call{"GET", path})
	if s.getBody != "" && out != nil {
		return json.Unmarshal([]byte(s.getBody), out)
	}
	return nil
}

func (s *stubClient) Post(ctx context.Context, path string, body, out any) error {
	s.calls = append(s.calls, call{"POST", path})
	if err := s.postErrs[path]; err != nil {
		return err
	}
	if created, ok := out.(*AdminVariant); ok {
		s.nextID++
		created.ID = 100 + s.nextID
	}
	return nil
}

func (s *stubClient) Patch(ctx context.Context, path string, body, out any) error {
	s.calls = append(s.calls, call{"PATCH", path})
	return s.patchErrs[path]
}

func (s *stubClient) Delete(ctx context.Context, path string) error {
	s.calls = append(s.calls, call{"DELETE", path})
	return s.deleteErrs[path]
}

func newTestService(t *testing.T, client *stubClient) *Service {
	t.Helper()
	svc, err := NewService(client, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func edit(id int64, weight string, price int64) VariantEdit {
	return VariantEdit{ID: &id, Weight: weight, Price: decimal.NewFromInt(price)}
}

func newEdit(weight string, price int64) VariantEdit {
	return VariantEdit{Weight: weight, Price: decimal.NewFromInt(price)}
}

func TestSyncVariantsDiff(t *testing.T) {
	t.Parallel()

	client := &stubClient{}
	svc := newTestService(t, client)

	// Originals 1,2,3; edits keep 2, carry unknown id 4, and add one new row.
	report, err := svc.SyncVariants(context.Background(), 10, []int64{1, 2, 3}, []VariantEdit{
		edit(2, "250g", 150),
		edit(4, "500g", 280),
		newEdit("1kg", 520),
	})
	require.NoError(t, err)

	require.Equal(t, []call{
		{"DELETE", "/admin/variants/1"},
		{"DELETE", "/admin/variants/3"},
		{"PATCH", "/admin/variants/2"},
		{"PATCH", "/admin/variants/4"},
		{"POST", "/admin/products/10/variants"},
	}, client.calls, "deletions first, then sequential per-edit calls")

	require.Equal(t, []int64{1, 3}, report.Deleted)
	// Id 4 was never in the originals but still gets an update: the rule is
	// has-id means update, the original set only drives deletions.
	require.Equal(t, []int64{2, 4}, report.Updated)
	require.Len(t, report.Created, 1)
	require.NoError(t, report.DeleteFailures)
}

func TestSyncVariantsDeleteSoftFails(t *testing.T) {
	t.Parallel()

	client := &stubClient{deleteErrs: map[string]error{
		"/admin/variants/1": pkgerrors.New(pkgerrors.CodeDependency, "api 500: boom"),
	}}
	svc := newTestService(t, client)

	report, err := svc.SyncVariants(context.Background(), 10, []int64{1, 3}, []VariantEdit{edit(2, "250g", 150)})
	require.NoError(t, err, "delete failures do not fail the sync")

	require.Equal(t, []int64{3}, report.Deleted)
	require.Error(t, report.DeleteFailures)
	require.Len(t, multierr.Errors(report.DeleteFailures), 1)
	require.Equal(t, []call{
		{"DELETE", "/admin/variants/1"},
		{"DELETE", "/admin/variants/3"},
		{"PATCH", "/admin/variants/2"},
	}, client.calls, "a failed delete does not stop the remaining steps")
}

func TestSyncVariantsUpdateHardFails(t *testing.T) {
	t.Parallel()

	client := &stubClient{patchErrs: map[string]error{
		"/admin/variants/2": pkgerrors.New(pkgerrors.CodeValidation, "api 400: bad weight"),
	}}
	svc := newTestService(t, client)

	report, err := svc.SyncVariants(context.Background(), 10, nil, []VariantEdit{
		edit(2, "", 150),
		newEdit("1kg", 520),
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	require.Empty(t, report.Created, "remaining steps abort after a failed update")

	for _, c := range client.calls {
		require.NotEqual(t, "POST", c.method, "no create after the failed update")
	}
}

func TestSyncVariantsCreateHardFails(t *testing.T) {
	t.Parallel()

	client := &stubClient{postErrs: map[string]error{
		"/admin/products/10/variants": pkgerrors.New(pkgerrors.CodeDependency, "api 502: gateway"),
	}}
	svc := newTestService(t, client)

	_, err := svc.SyncVariants(context.Background(), 10, nil, []VariantEdit{
		newEdit("250g", 150),
		newEdit("500g", 280),
	})
	require.Error(t, err)
	require.Len(t, client.calls, 1, "first failed create aborts the rest")
}

func TestSyncVariantsNoChanges(t *testing.T) {
	t.Parallel()

	client := &stubClient{}
	svc := newTestService(t, client)

	report, err := svc.SyncVariants(context.Background(), 10, []int64{5}, []VariantEdit{edit(5, "250g", 150)})
	require.NoError(t, err)
	require.Empty(t, report.Deleted)
	require.Equal(t, []int64{5}, report.Updated)
}

func TestListOrdersPath(t *testing.T) {
	t.Parallel()

	client := &stubClient{getBody: `[{"id":3,"customer_name":"John Doe","items":[{"id":1,"variant_id":11,"quantity":2,"price":150}]}]`}
	svc := newTestService(t, client)

	orders, err := svc.ListOrders(context.Background(), 50, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "John Doe", orders[0].CustomerName)
	require.Equal(t, fmt.Sprintf("/admin/orders?limit=%d&offset=%d", 50, 10), client.calls[0].path)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	client := &stubClient{}
	svc := newTestService(t, client)

	require.NoError(t, svc.DeleteProduct(context.Background(), 4))
	require.Equal(t, []call{{"DELETE", "/admin/products/4"}}, client.calls)
}

func TestNewProductCreate(t *testing.T) {
	t.Parallel()

	input := NewProductCreate("Mango Pickle", "pickles", []VariantEdit{newEdit("250g", 150), newEdit("500g", 280)})
	require.Equal(t, "Mango Pickle", input.Name)
	require.Len(t, input.Variants, 2)
	require.Equal(t, 150.0, input.Variants[0].Price)
}
