package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/srisaikitchen/storefront/internal/cart"
	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
)

// DefaultPaymentMethod is used until an online payment integration exists.
const DefaultPaymentMethod = "COD"

type poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

type cartAccess interface {
	Items() []cart.Item
	Clear(ctx context.Context) error
}

// CustomerInfo is the checkout form. Email is optional; everything else must
// be present before any network call is made.
type CustomerInfo struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Pincode       string `json:"pincode" validate:"required"`
	PaymentMethod string `json:"payment_method"`
}

// CustomerName joins the name parts for the order payload.
func (c CustomerInfo) CustomerName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// FullAddress flattens the address fields into the single string the backend
// stores.
func (c CustomerInfo) FullAddress() string {
	return strings.TrimSpace(fmt.Sprintf("%s, %s, %s - %s", c.Address, c.City, c.State, c.Pincode))
}

type orderItemPayload struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type orderPayload struct {
	CustomerName  string             `json:"customer_name"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"payment_method"`
	Items         []orderItemPayload `json:"items"`
}

type orderResponse struct {
	ID int64 `json:"id"`
}

// Service submits orders. One best-effort request per call: no retry, no
// idempotency key; a network failure leaves the cart untouched for a manual
// resubmit.
type Service struct {
	client poster
	cart   cartAccess
	logger *logger.Logger
}

// NewService builds a checkout service.
func NewService(client poster, cartStore cartAccess, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("rest client required")
	}
	if cartStore == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{client: client, cart: cartStore, logger: logg}, nil
}

// Submit validates the form and cart, posts the order, and clears the cart on
// success. Lines without a backend variant id cannot be ordered and are
// dropped; if that leaves nothing, submission is aborted before any network
// call rather than sent partially.
func (s *Service) Submit(ctx context.Context, info CustomerInfo) (int64, error) {
	if err := validateCustomerInfo(info); err != nil {
		return 0, err
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	payloadItems := make([]orderItemPayload, 0, len(items))
	skipped := 0
	for _, item := range items {
		if item.Variant.ID == nil {
			skipped++
			continue
		}
		payloadItems = append(payloadItems, orderItemPayload{VariantID: *item.Variant.ID, Quantity: item.Quantity})
	}
	if len(payloadItems) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "cart items are missing backend variant ids, refresh and try again")
	}
	if skipped > 0 {
		s.logger.Warn(s.logger.WithField(ctx, "skipped_lines", skipped), "dropping cart lines without variant ids")
	}

	method := info.PaymentMethod
	if method == "" {
		method = DefaultPaymentMethod
	}
	payload := orderPayload{
		CustomerName:  info.CustomerName(),
		Phone:         info.Phone,
		Address:       info.FullAddress(),
		PaymentMethod: method,
		Items:         payloadItems,
	}

	var created orderResponse
	if err := s.client.Post(ctx, "/orders", payload, &created); err != nil {
		// Cart stays as-is so the user can retry manually.
		return 0, err
	}

	ctx = s.logger.WithOrderID(ctx, created.ID)
	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Warn(ctx, fmt.Sprintf("order placed but cart clear failed: %v", err))
	}
	s.logger.Info(ctx, "order placed")
	return created.ID, nil
}
