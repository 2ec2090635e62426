package handlers

import (
	"net/http"

	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/response"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
	"github.com/girafadepapel/storefront-service/internal/poller"
)

// PaymentHandler is the status endpoint the result pages poll while waiting
// for the gateway to settle. The gateway is the source of truth for status;
// the stored record contributes checkout-side context (preference id, source,
// approval time).
type PaymentHandler struct {
	gateway  ports.PaymentGateway
	payments ports.PaymentRepository
	log      *logger.Logger
}

func NewPaymentHandler(gateway ports.PaymentGateway, payments ports.PaymentRepository, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		gateway:  gateway,
		payments: payments,
		log:      log,
	}
}

type paymentStatusResponse struct {
	PaymentID         string         `json:"payment_id"`
	Status            payment.Status `json:"status"`
	StatusDetail      string         `json:"status_detail"`
	ExternalReference string         `json:"external_reference"`
	Terminal          bool           `json:"terminal"`
	Amount            float64        `json:"amount"`
	PaymentMethod     string         `json:"payment_method,omitempty"`
	PaymentType       string         `json:"payment_type,omitempty"`
	Installments      int            `json:"installments,omitempty"`
	CardLastFour      string         `json:"card_last_four,omitempty"`
	DateCreated       string         `json:"date_created,omitempty"`
	DateApproved      string         `json:"date_approved,omitempty"`
	PreferenceID      string         `json:"preference_id,omitempty"`
	Source            string         `json:"source,omitempty"`
}

func (h *PaymentHandler) HandleGetPayment(w http.ResponseWriter, r *http.Request, paymentID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	details, status, err := poller.FetchOnce(r.Context(), h.gateway, paymentID)
	if err != nil {
		h.log.Warn("Payment status lookup failed", "payment_id", paymentID, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	resp := paymentStatusResponse{
		PaymentID:         details.ID.String(),
		Status:            status,
		StatusDetail:      details.StatusDetail,
		ExternalReference: details.ExternalReference,
		Terminal:          status.IsTerminal(),
		Amount:            details.TransactionAmount,
		PaymentMethod:     details.PaymentMethodID,
		PaymentType:       details.PaymentTypeID,
		Installments:      details.Installments,
		DateCreated:       details.DateCreated,
		DateApproved:      details.DateApproved,
	}
	if details.Card != nil {
		resp.CardLastFour = details.Card.LastFourDigits
	}

	if details.ExternalReference != "" {
		record, recordErr := h.payments.GetByReference(r.Context(), details.ExternalReference)
		if recordErr != nil {
			h.log.Warn("Payment record lookup failed",
				"external_reference", details.ExternalReference,
				"error", recordErr.Error(),
			)
		} else if record != nil {
			resp.PreferenceID = record.PreferenceID
			resp.Source = record.Source
		}
	}

	response.WriteSuccess(w, resp)
}
