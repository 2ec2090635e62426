package payment

import (
	"time"
)

const (
	SourceCheckout = "checkout"
	SourceWebhook  = "webhook"
)

// Record is the persisted payment status, keyed by the external reference
// generated at checkout. It is created optimistically when the preference is
// requested and afterwards mutated only by webhook (or reconciliation)
// processing. It is never deleted.
type Record struct {
	ExternalReference string
	PaymentID         string
	PreferenceID      string
	Status            Status
	StatusDetail      string
	GatewayStatus     string
	Amount            float64
	PaymentMethod     string
	PaymentType       string
	Installments      int
	PayerEmail        string
	Source            string
	LastEventAt       time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ApprovedAt        *time.Time
}

// NewPendingRecord is the optimistic record written while the preference is
// being created, before the gateway has reported anything.
func NewPendingRecord(externalReference, preferenceID string, amount float64, now time.Time) *Record {
	return &Record{
		ExternalReference: externalReference,
		PreferenceID:      preferenceID,
		Status:            StatusPending,
		GatewayStatus:     "pending",
		Amount:            amount,
		Source:            SourceCheckout,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ApplyGatewayPayment folds the gateway's view of the payment into the
// record. It refuses stale events: the gateway may redeliver notifications
// out of order, and an older event must not regress a newer status.
func (r *Record) ApplyGatewayPayment(p *GatewayPayment, now time.Time) bool {
	eventTime := p.LastUpdated()
	if !r.LastEventAt.IsZero() && !eventTime.IsZero() && eventTime.Before(r.LastEventAt) {
		return false
	}

	r.PaymentID = p.ID.String()
	r.Status = FromGatewayStatus(p.Status)
	r.StatusDetail = p.StatusDetail
	r.GatewayStatus = p.Status
	if p.TransactionAmount > 0 {
		r.Amount = p.TransactionAmount
	}
	r.PaymentMethod = p.PaymentMethodID
	r.PaymentType = p.PaymentTypeID
	r.Installments = p.Installments
	r.PayerEmail = p.Payer.Email
	r.LastEventAt = eventTime
	r.UpdatedAt = now

	if r.Status == StatusApproved && r.ApprovedAt == nil {
		approvedAt := now
		if t, err := time.Parse(time.RFC3339, p.DateApproved); err == nil {
			approvedAt = t
		}
		r.ApprovedAt = &approvedAt
	}

	return true
}

// RecordFromGatewayPayment builds a webhook-sourced record for the edge case
// where the notification arrives before the optimistic record was written.
func RecordFromGatewayPayment(externalReference string, p *GatewayPayment, now time.Time) *Record {
	r := &Record{
		ExternalReference: externalReference,
		Source:            SourceWebhook,
		CreatedAt:         now,
	}
	r.ApplyGatewayPayment(p, now)
	return r
}
