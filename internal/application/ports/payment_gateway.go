package ports

import (
	"context"

	"github.com/girafadepapel/storefront-service/internal/domain/payment"
)

// PaymentGateway is the hosted payment API. Both calls are bounded by the
// client's configured timeout.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, req *payment.PreferenceRequest) (*payment.Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*payment.GatewayPayment, error)
}
