package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayPayment(status string, lastUpdated time.Time) *GatewayPayment {
	return &GatewayPayment{
		ID:                "12345",
		Status:            status,
		StatusDetail:      "accredited",
		ExternalReference: "pedido_1700000000000_abcdef",
		TransactionAmount: 75.00,
		PaymentMethodID:   "pix",
		PaymentTypeID:     "bank_transfer",
		DateCreated:       lastUpdated.Add(-time.Minute).Format(time.RFC3339),
		DateLastUpdated:   lastUpdated.Format(time.RFC3339),
		Payer:             PaymentPayer{Email: "ana@example.com"},
	}
}

func TestApplyGatewayPaymentUpdatesRecord(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	record := NewPendingRecord("pedido_1700000000000_abcdef", "pref-1", 75.00, now.Add(-time.Hour))

	applied := record.ApplyGatewayPayment(gatewayPayment("approved", now), now)

	require.True(t, applied)
	assert.Equal(t, StatusApproved, record.Status)
	assert.Equal(t, "12345", record.PaymentID)
	assert.Equal(t, "approved", record.GatewayStatus)
	assert.Equal(t, "pix", record.PaymentMethod)
	assert.Equal(t, "ana@example.com", record.PayerEmail)
	require.NotNil(t, record.ApprovedAt)
}

func TestApplyGatewayPaymentRejectsStaleEvent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	record := NewPendingRecord("pedido_1700000000000_abcdef", "pref-1", 75.00, now.Add(-time.Hour))

	require.True(t, record.ApplyGatewayPayment(gatewayPayment("approved", now), now))

	stale := record.ApplyGatewayPayment(gatewayPayment("pending", now.Add(-10*time.Minute)), now.Add(time.Minute))

	assert.False(t, stale)
	assert.Equal(t, StatusApproved, record.Status)
}

func TestApplyGatewayPaymentAcceptsNewerEvent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	record := NewPendingRecord("pedido_1700000000000_abcdef", "pref-1", 75.00, now.Add(-time.Hour))

	require.True(t, record.ApplyGatewayPayment(gatewayPayment("pending", now), now))
	require.True(t, record.ApplyGatewayPayment(gatewayPayment("approved", now.Add(5*time.Minute)), now.Add(5*time.Minute)))

	assert.Equal(t, StatusApproved, record.Status)
}

func TestApplyGatewayPaymentKeepsFirstApprovedAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	record := NewPendingRecord("pedido_1700000000000_abcdef", "pref-1", 75.00, now.Add(-time.Hour))

	require.True(t, record.ApplyGatewayPayment(gatewayPayment("approved", now), now))
	first := *record.ApprovedAt

	require.True(t, record.ApplyGatewayPayment(gatewayPayment("approved", now.Add(time.Hour)), now.Add(time.Hour)))

	assert.Equal(t, first, *record.ApprovedAt)
}

func TestRecordFromGatewayPaymentTagsWebhookSource(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	record := RecordFromGatewayPayment("pedido_1700000000000_abcdef", gatewayPayment("approved", now), now)

	assert.Equal(t, SourceWebhook, record.Source)
	assert.Equal(t, StatusApproved, record.Status)
	assert.Equal(t, "pedido_1700000000000_abcdef", record.ExternalReference)
	assert.Equal(t, 75.00, record.Amount)
}

func TestGatewayPaymentLastUpdatedFallsBackToCreated(t *testing.T) {
	created := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	p := &GatewayPayment{DateCreated: created.Format(time.RFC3339)}
	assert.Equal(t, created, p.LastUpdated().UTC())

	empty := &GatewayPayment{}
	assert.True(t, empty.LastUpdated().IsZero())
}
