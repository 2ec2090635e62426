package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girafadepapel/storefront-service/internal/application/commands"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

const webhookSecret = "shhh-webhook-secret"

func newWebhookFixture(secret string) (*WebhookHandler, *stubGateway, *stubPaymentRepo, *stubOrderRepo) {
	gateway := newStubGateway()
	payments := newStubPaymentRepo()
	orders := newStubOrderRepo()
	clk := clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	log := logger.NewLogger()

	events := commands.NewPaymentEventHandler(gateway, payments, orders, clk, log)
	return NewWebhookHandler(events, secret, log), gateway, payments, orders
}

func sign(dataID, requestID, ts string) string {
	manifest := ""
	if dataID != "" {
		manifest += "id:" + dataID + ";"
	}
	if requestID != "" {
		manifest += "request-id:" + requestID + ";"
	}
	manifest += "ts:" + ts + ";"

	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(manifest))
	return hex.EncodeToString(mac.Sum(nil))
}

func signedRequest(t *testing.T, body interface{}, dataID string) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook", bytes.NewReader(payload))
	req.Header.Set("x-request-id", "req-1")
	req.Header.Set("x-signature", "ts=1700000000,v1="+sign(dataID, "req-1", "1700000000"))
	return req
}

func paymentEventBody(dataID string) map[string]interface{} {
	return map[string]interface{}{
		"type":   "payment",
		"action": "payment.updated",
		"data":   map[string]interface{}{"id": dataID},
	}
}

func TestWebhookProcessesSignedPaymentEvent(t *testing.T) {
	handler, gateway, payments, orders := newWebhookFixture(webhookSecret)

	gateway.payment = &payment.GatewayPayment{
		ID:                "555",
		Status:            "approved",
		ExternalReference: "pedido_1700000000000_abcdef",
		DateLastUpdated:   "2026-03-10T12:00:00Z",
	}

	rec := httptest.NewRecorder()
	handler.HandleWebhook()(rec, signedRequest(t, paymentEventBody("555"), "555"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, payments.record)
	assert.Equal(t, payment.StatusApproved, payments.record.Status)
	assert.Equal(t, []string{"pedido_1700000000000_abcdef"}, orders.paidRefs)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	handler, _, payments, _ := newWebhookFixture(webhookSecret)

	payload, _ := json.Marshal(paymentEventBody("555"))
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook", bytes.NewReader(payload))
	req.Header.Set("x-request-id", "req-1")
	req.Header.Set("x-signature", "ts=1700000000,v1=deadbeef")

	rec := httptest.NewRecorder()
	handler.HandleWebhook()(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, payments.record)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	handler, _, _, _ := newWebhookFixture(webhookSecret)

	payload, _ := json.Marshal(paymentEventBody("555"))
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook", bytes.NewReader(payload))

	rec := httptest.NewRecorder()
	handler.HandleWebhook()(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookUserAgentFallbackWithoutSecret(t *testing.T) {
	handler, gateway, payments, _ := newWebhookFixture("")

	gateway.payment = &payment.GatewayPayment{
		ID:                "555",
		Status:            "pending",
		ExternalReference: "pedido_1700000000000_abcdef",
		DateLastUpdated:   "2026-03-10T12:00:00Z",
	}

	payload, _ := json.Marshal(paymentEventBody("555"))
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook", bytes.NewReader(payload))
	req.Header.Set("User-Agent", "MercadoPago WebHook v1.0")

	rec := httptest.NewRecorder()
	handler.HandleWebhook()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, payments.record)

	other := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook", bytes.NewReader(payload))
	other.Header.Set("User-Agent", "curl/8.0")

	rec = httptest.NewRecorder()
	handler.HandleWebhook()(rec, other)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookNormalizesQueryParameters(t *testing.T) {
	handler, gateway, payments, _ := newWebhookFixture("")

	gateway.payment = &payment.GatewayPayment{
		ID:                "777",
		Status:            "pending",
		ExternalReference: "pedido_1700000000000_abcdef",
		DateLastUpdated:   "2026-03-10T12:00:00Z",
	}

	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook?topic=payment&id=777", nil)
	req.Header.Set("User-Agent", "MercadoPago WebHook v1.0")

	rec := httptest.NewRecorder()
	handler.HandleWebhook()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "777", gateway.requestedID)
	require.NotNil(t, payments.record)
}

func TestWebhookAcknowledgesUnsupportedTopic(t *testing.T) {
	handler, gateway, _, _ := newWebhookFixture("")

	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook?topic=test&id=1", nil)
	req.Header.Set("User-Agent", "MercadoPago WebHook v1.0")

	rec := httptest.NewRecorder()
	handler.HandleWebhook()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", gateway.requestedID, "gateway must not be queried for unsupported topics")
}

func TestWebhookAcknowledgesMerchantOrder(t *testing.T) {
	handler, gateway, _, _ := newWebhookFixture("")

	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook?topic=merchant_order&id=42", nil)
	req.Header.Set("User-Agent", "MercadoPago WebHook v1.0")

	rec := httptest.NewRecorder()
	handler.HandleWebhook()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", gateway.requestedID)
}

func TestWebhookGatewayFailureReturns500(t *testing.T) {
	handler, gateway, _, _ := newWebhookFixture("")
	gateway.err = assert.AnError

	payload, _ := json.Marshal(paymentEventBody("555"))
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/webhook", bytes.NewReader(payload))
	req.Header.Set("User-Agent", "MercadoPago WebHook v1.0")

	rec := httptest.NewRecorder()
	handler.HandleWebhook()(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
