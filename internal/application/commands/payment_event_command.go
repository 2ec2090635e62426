package commands

import (
	"context"

	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

type PaymentEventResult struct {
	PaymentID         string         `json:"paymentId"`
	Status            payment.Status `json:"status"`
	ExternalReference string         `json:"externalReference"`
}

// PaymentEventHandler is the single writer of payment records: it translates
// a gateway notification into an upsert plus, on approval, the order-side
// mark-paid. Persistence failures are logged and swallowed so the gateway is
// still acknowledged; a webhook redelivery cannot fix a write that already
// failed locally.
type PaymentEventHandler struct {
	gateway  ports.PaymentGateway
	payments ports.PaymentRepository
	orders   ports.OrderRepository
	clock    clock.Clock
	log      *logger.Logger
}

func NewPaymentEventHandler(
	gateway ports.PaymentGateway,
	payments ports.PaymentRepository,
	orders ports.OrderRepository,
	clk clock.Clock,
	log *logger.Logger,
) *PaymentEventHandler {
	return &PaymentEventHandler{
		gateway:  gateway,
		payments: payments,
		orders:   orders,
		clock:    clk,
		log:      log,
	}
}

// Handle processes a payment event. The returned error means the event was
// wholly unprocessable (the gateway lookup itself failed) and the caller
// should ask for a redelivery.
func (h *PaymentEventHandler) Handle(ctx context.Context, event payment.WebhookEvent) (*PaymentEventResult, error) {
	details, err := h.gateway.GetPayment(ctx, event.DataID)
	if err != nil {
		h.log.Error("Failed to fetch payment details",
			"payment_id", event.DataID,
			"error", err.Error(),
		)
		return nil, err
	}

	status := payment.FromGatewayStatus(details.Status)
	monitoring.RecordWebhookPaymentStatus(string(status))

	result := &PaymentEventResult{
		PaymentID:         details.ID.String(),
		Status:            status,
		ExternalReference: details.ExternalReference,
	}

	if details.ExternalReference == "" {
		h.log.Warn("Payment has no external reference, nothing to update", "payment_id", details.ID)
		return result, nil
	}

	h.ApplyPayment(ctx, details)

	return result, nil
}

// ApplyPayment folds the gateway's payment into the persisted record and, on
// approval, the companion order. Shared with the reconciliation poller, which
// reaches the same state without a webhook delivery.
func (h *PaymentEventHandler) ApplyPayment(ctx context.Context, details *payment.GatewayPayment) {
	reference := details.ExternalReference
	now := h.clock.Now()

	record, err := h.payments.GetByReference(ctx, reference)
	if err != nil {
		h.log.Error("Failed to load payment record", "external_reference", reference, "error", err.Error())
		return
	}

	if record == nil {
		// Notification raced ahead of the optimistic record; create one and
		// tag its origin for auditability.
		record = payment.RecordFromGatewayPayment(reference, details, now)
		if err := h.payments.Create(ctx, record); err != nil {
			h.log.Error("Failed to create webhook-sourced payment record",
				"external_reference", reference,
				"error", err.Error(),
			)
			return
		}
		h.log.Info("Created webhook-sourced payment record",
			"external_reference", reference,
			"status", record.Status,
		)
	} else {
		if !record.ApplyGatewayPayment(details, now) {
			h.log.Warn("Skipping stale payment event",
				"external_reference", reference,
				"gateway_status", details.Status,
			)
			return
		}
		if err := h.payments.Update(ctx, record); err != nil {
			h.log.Error("Failed to update payment record",
				"external_reference", reference,
				"error", err.Error(),
			)
			return
		}
		h.log.Info("Payment record updated",
			"external_reference", reference,
			"status", record.Status,
		)
	}

	// Only approval has an order-side effect. This is a second, independent
	// write; the reconciliation pass repairs the gap if it never lands.
	if record.Status == payment.StatusApproved {
		if err := h.orders.MarkPaid(ctx, reference); err != nil {
			h.log.Error("Failed to mark order as paid",
				"external_reference", reference,
				"error", err.Error(),
			)
		}
	}
}
