package checkout

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/srisaikitchen/storefront/internal/cart"
	"github.com/srisaikitchen/storefront/internal/catalog"
	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
)

type stubPoster struct {
	calls    int
	lastPath string
	lastBody any
	response string
	err      error
}

func (s *stubPoster) Post(ctx context.Context, path string, body, out any) error {
	s.calls++
	s.lastPath = path
	s.lastBody = body
	if s.err != nil {
		return s.err
	}
	if s.response != "" && out != nil {
		return json.Unmarshal([]byte(s.response), out)
	}
	return nil
}

type stubCart struct {
	items   []cart.Item
	cleared bool
}

func (s *stubCart) Items() []cart.Item { return s.items }
func (s *stubCart) Clear(ctx context.Context) error {
	s.cleared = true
	s.items = nil
	return nil
}

func validInfo() CustomerInfo {
	return CustomerInfo{
		FirstName: "John",
		LastName:  "Doe",
		Phone:     "9876543210",
		Address:   "12 Main Rd",
		City:      "Guntur",
		State:     "AP",
		Pincode:   "522001",
	}
}

func lineWithVariantID(id int64, qty int) cart.Item {
	return cart.Item{
		Product:  catalog.Product{ID: "1", Name: "Mango Pickle"},
		Variant:  catalog.Variant{ID: &id, Label: "250g", Price: decimal.NewFromInt(150), Stock: 10},
		Quantity: qty,
	}
}

func lineWithoutVariantID(qty int) cart.Item {
	return cart.Item{
		Product:  catalog.Product{ID: "2", Name: "Plain Podi"},
		Variant:  catalog.Variant{Label: "default", Price: decimal.NewFromInt(100), Stock: 10},
		Quantity: qty,
	}
}

func newTestService(t *testing.T, client *stubPoster, cartStore *stubCart) *Service {
	t.Helper()
	svc, err := NewService(client, cartStore, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	t.Parallel()

	client := &stubPoster{response: `{"id":42}`}
	cartStore := &stubCart{items: []cart.Item{lineWithVariantID(11, 2)}}
	svc := newTestService(t, client, cartStore)

	orderID, err := svc.Submit(context.Background(), validInfo())
	require.NoError(t, err)
	require.EqualValues(t, 42, orderID)
	require.True(t, cartStore.cleared)
	require.Equal(t, "/orders", client.lastPath)

	payload := client.lastBody.(orderPayload)
	require.Equal(t, "John Doe", payload.CustomerName)
	require.Equal(t, "12 Main Rd, Guntur, AP - 522001", payload.Address)
	require.Equal(t, DefaultPaymentMethod, payload.PaymentMethod)
	require.Len(t, payload.Items, 1)
	require.EqualValues(t, 11, payload.Items[0].VariantID)
	require.Equal(t, 2, payload.Items[0].Quantity)
}

func TestSubmitMissingFieldsBlocksBeforeNetwork(t *testing.T) {
	t.Parallel()

	client := &stubPoster{}
	cartStore := &stubCart{items: []cart.Item{lineWithVariantID(11, 1)}}
	svc := newTestService(t, client, cartStore)

	info := validInfo()
	info.Phone = ""
	_, err := svc.Submit(context.Background(), info)

	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]string)
	require.Equal(t, "is required", details["phone"])
	require.Zero(t, client.calls, "no network call on validation failure")
	require.False(t, cartStore.cleared)
}

func TestSubmitEmptyCartBlocked(t *testing.T) {
	t.Parallel()

	client := &stubPoster{}
	svc := newTestService(t, client, &stubCart{})

	_, err := svc.Submit(context.Background(), validInfo())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	require.Zero(t, client.calls)
}

func TestSubmitFiltersLinesWithoutVariantIDs(t *testing.T) {
	t.Parallel()

	client := &stubPoster{response: `{"id":7}`}
	cartStore := &stubCart{items: []cart.Item{lineWithoutVariantID(1), lineWithVariantID(22, 3)}}
	svc := newTestService(t, client, cartStore)

	_, err := svc.Submit(context.Background(), validInfo())
	require.NoError(t, err)

	payload := client.lastBody.(orderPayload)
	require.Len(t, payload.Items, 1, "line without a variant id is dropped")
	require.EqualValues(t, 22, payload.Items[0].VariantID)
}

func TestSubmitAllLinesMissingIDsAborts(t *testing.T) {
	t.Parallel()

	client := &stubPoster{}
	cartStore := &stubCart{items: []cart.Item{lineWithoutVariantID(1)}}
	svc := newTestService(t, client, cartStore)

	_, err := svc.Submit(context.Background(), validInfo())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	require.Zero(t, client.calls, "partial orders must never be sent")
	require.False(t, cartStore.cleared)
}

func TestSubmitFailurePreservesCart(t *testing.T) {
	t.Parallel()

	client := &stubPoster{err: pkgerrors.New(pkgerrors.CodeDependency, "api 500: boom")}
	cartStore := &stubCart{items: []cart.Item{lineWithVariantID(11, 1)}}
	svc := newTestService(t, client, cartStore)

	_, err := svc.Submit(context.Background(), validInfo())
	require.Error(t, err)
	require.False(t, cartStore.cleared, "cart must survive a failed submission")
	require.Len(t, cartStore.items, 1)
}

func TestSubmitCustomPaymentMethod(t *testing.T) {
	t.Parallel()

	client := &stubPoster{response: `{"id":1}`}
	cartStore := &stubCart{items: []cart.Item{lineWithVariantID(11, 1)}}
	svc := newTestService(t, client, cartStore)

	info := validInfo()
	info.PaymentMethod = "UPI"
	_, err := svc.Submit(context.Background(), info)
	require.NoError(t, err)
	require.Equal(t, "UPI", client.lastBody.(orderPayload).PaymentMethod)
}
