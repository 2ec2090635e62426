package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

func TestHandleGetPaymentMergesStoredRecord(t *testing.T) {
	gateway := newStubGateway()
	gateway.payment = &payment.GatewayPayment{
		ID:                "12345",
		Status:            "approved",
		StatusDetail:      "accredited",
		ExternalReference: "pedido_1_ab",
		TransactionAmount: 58.5,
		PaymentMethodID:   "master",
		PaymentTypeID:     "credit_card",
		Installments:      3,
		DateCreated:       "2026-03-10T12:00:00Z",
		DateApproved:      "2026-03-10T12:05:00Z",
		Card:              &payment.Card{LastFourDigits: "4321"},
	}

	payments := newStubPaymentRepo()
	payments.record = &payment.Record{
		ExternalReference: "pedido_1_ab",
		PreferenceID:      "pref-123",
		Source:            payment.SourceCheckout,
		CreatedAt:         time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	handler := NewPaymentHandler(gateway, payments, logger.NewLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/payments/12345", nil)
	handler.HandleGetPayment(rec, req, "12345")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", gateway.requestedID)

	var resp paymentStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, payment.StatusApproved, resp.Status)
	assert.True(t, resp.Terminal)
	assert.Equal(t, 58.5, resp.Amount)
	assert.Equal(t, "master", resp.PaymentMethod)
	assert.Equal(t, 3, resp.Installments)
	assert.Equal(t, "4321", resp.CardLastFour)
	assert.Equal(t, "pref-123", resp.PreferenceID)
	assert.Equal(t, payment.SourceCheckout, resp.Source)
}

func TestHandleGetPaymentWithoutStoredRecord(t *testing.T) {
	gateway := newStubGateway()
	gateway.payment = &payment.GatewayPayment{
		ID:                "777",
		Status:            "pending",
		ExternalReference: "pedido_2_cd",
		TransactionAmount: 30.0,
	}

	handler := NewPaymentHandler(gateway, newStubPaymentRepo(), logger.NewLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/payments/777", nil)
	handler.HandleGetPayment(rec, req, "777")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp paymentStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, payment.StatusPending, resp.Status)
	assert.False(t, resp.Terminal)
	assert.Empty(t, resp.PreferenceID)
}

func TestHandleGetPaymentNotFound(t *testing.T) {
	gateway := newStubGateway()
	gateway.err = domainErrors.ErrPaymentNotFound

	handler := NewPaymentHandler(gateway, newStubPaymentRepo(), logger.NewLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/payments/99999", nil)
	handler.HandleGetPayment(rec, req, "99999")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
