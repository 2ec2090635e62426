package commands

import (
	"context"
	"strings"
	"time"

	"github.com/girafadepapel/storefront-service/internal/application/cartstore"
	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/config"
	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/domain/order"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
	"github.com/girafadepapel/storefront-service/internal/pkg/generator"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

type CheckoutCommand struct {
	SessionID string
	Customer  order.Customer
}

type CheckoutResponse struct {
	PreferenceID      string `json:"preference_id"`
	ExternalReference string `json:"external_reference"`
	InitPoint         string `json:"init_point"`
	SandboxInitPoint  string `json:"sandbox_init_point"`
	// RedirectURL is the init point matching the configured environment.
	RedirectURL string  `json:"redirect_url"`
	ExpiresAt   string  `json:"expires_at"`
	Total       float64 `json:"total"`
	ItemsCount  int     `json:"items_count"`
}

// ValidationError carries the field-scoped messages back to the form without
// clearing the shopper's input. It never crosses the HTTP boundary as a 5xx.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "checkout data failed validation"
}

// CheckoutHandler turns a non-empty cart plus customer data into a gateway
// redirect, exactly once per submission. No automatic retry: on gateway
// failure the cart is left intact and the shopper decides.
type CheckoutHandler struct {
	carts        *cartstore.Store
	gateway      ports.PaymentGateway
	payments     ports.PaymentRepository
	orders       ports.OrderRepository
	snapshots    ports.OrderSnapshotStore
	storeCfg     config.StoreConfig
	gatewayCfg   config.MercadoPagoConfig
	referenceGen *generator.ReferenceGenerator
	clock        clock.Clock
	log          *logger.Logger
}

func NewCheckoutHandler(
	carts *cartstore.Store,
	gateway ports.PaymentGateway,
	payments ports.PaymentRepository,
	orders ports.OrderRepository,
	snapshots ports.OrderSnapshotStore,
	storeCfg config.StoreConfig,
	gatewayCfg config.MercadoPagoConfig,
	clk clock.Clock,
	log *logger.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		carts:        carts,
		gateway:      gateway,
		payments:     payments,
		orders:       orders,
		snapshots:    snapshots,
		storeCfg:     storeCfg,
		gatewayCfg:   gatewayCfg,
		referenceGen: generator.NewReferenceGenerator(clk),
		clock:        clk,
		log:          log,
	}
}

func (h *CheckoutHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*CheckoutResponse, error) {
	monitoring.RecordCheckoutAttempt()

	if fieldErrs := cmd.Customer.Validate(); len(fieldErrs) > 0 {
		monitoring.RecordCheckoutFailure("validation")
		return nil, &ValidationError{Fields: fieldErrs}
	}

	currentCart := h.carts.Get(ctx, cmd.SessionID)
	if currentCart.IsEmpty() {
		monitoring.RecordCheckoutFailure("empty_cart")
		return nil, errors.ErrCartEmpty
	}

	reference := h.referenceGen.GenerateOrderReference()
	now := h.clock.Now()

	req := h.buildPreferenceRequest(currentCart, cmd.Customer, reference, now)

	pref, err := h.gateway.CreatePreference(ctx, req)
	if err != nil {
		h.log.Error("Failed to create payment preference",
			"session_id", cmd.SessionID,
			"external_reference", reference,
			"error", err.Error(),
		)
		monitoring.RecordCheckoutFailure("gateway")
		return nil, err
	}

	monitoring.RecordCheckoutSuccess()

	// Optimistic records for the reconciliation flow. Failures here are
	// logged and swallowed: the shopper already has a payable preference and
	// the webhook path recreates missing records.
	record := payment.NewPendingRecord(reference, pref.ID, currentCart.Total, now)
	if err := h.payments.Create(ctx, record); err != nil {
		h.log.Error("Failed to persist payment record", "external_reference", reference, "error", err.Error())
	}

	o := order.New(reference, cmd.Customer, currentCart, pref.ID, now)
	if err := h.orders.Create(ctx, o); err != nil {
		h.log.Error("Failed to persist order", "external_reference", reference, "error", err.Error())
	}
	if err := h.snapshots.SaveLast(ctx, cmd.SessionID, o); err != nil {
		h.log.Error("Failed to save order snapshot", "session_id", cmd.SessionID, "error", err.Error())
	}

	h.carts.Clear(ctx, cmd.SessionID)

	redirectURL := pref.SandboxInitPoint
	if h.gatewayCfg.IsProduction() {
		redirectURL = pref.InitPoint
	}

	h.log.Info("Checkout completed",
		"session_id", cmd.SessionID,
		"external_reference", reference,
		"preference_id", pref.ID,
		"total", currentCart.Total,
	)

	return &CheckoutResponse{
		PreferenceID:      pref.ID,
		ExternalReference: reference,
		InitPoint:         pref.InitPoint,
		SandboxInitPoint:  pref.SandboxInitPoint,
		RedirectURL:       redirectURL,
		ExpiresAt:         pref.DateOfExpiration,
		Total:             currentCart.Total,
		ItemsCount:        len(currentCart.Items),
	}, nil
}

func (h *CheckoutHandler) buildPreferenceRequest(c cart.Cart, customer order.Customer, reference string, now time.Time) *payment.PreferenceRequest {
	items := make([]payment.PreferenceItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, payment.PreferenceItem{
			ID:         item.ID,
			Title:      item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			CurrencyID: h.storeCfg.Currency,
		})
	}

	success, failure, pending := h.storeCfg.CallbackURLs()

	var identification *payment.Identification
	if taxID := strings.TrimSpace(customer.TaxID); taxID != "" {
		identification = &payment.Identification{
			Type:   taxIDType(taxID),
			Number: taxID,
		}
	}

	return &payment.PreferenceRequest{
		Items: items,
		Payer: &payment.Payer{
			Name:           customer.Name,
			Email:          customer.Email,
			Phone:          &payment.Phone{Number: customer.Phone},
			Identification: identification,
			Address: &payment.PayerAddress{
				ZipCode:      customer.Address.PostalCode,
				StreetName:   customer.Address.Street,
				StreetNumber: customer.Address.Number,
			},
		},
		BackURLs: payment.BackURLs{
			Success: success,
			Failure: failure,
			Pending: pending,
		},
		ExternalReference:   reference,
		NotificationURL:     h.storeCfg.WebhookURL(),
		Expires:             true,
		ExpirationFrom:      now.Format(time.RFC3339),
		ExpirationTo:        now.Add(h.storeCfg.PreferenceExpiration()).Format(time.RFC3339),
		StatementDescriptor: h.storeCfg.Name,
		Metadata: map[string]interface{}{
			"store_name":   h.storeCfg.Name,
			"created_at":   now.Format(time.RFC3339),
			"total_amount": c.Total,
		},
	}
}

// taxIDType distinguishes the two Brazilian tax id formats by digit count:
// 11 digits is a CPF (person), 14 a CNPJ (company).
func taxIDType(taxID string) string {
	digits := 0
	for _, r := range taxID {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits == 14 {
		return "CNPJ"
	}
	return "CPF"
}
