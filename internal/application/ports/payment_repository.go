package ports

import (
	"context"

	"github.com/girafadepapel/storefront-service/internal/domain/payment"
)

type PaymentRepository interface {
	GetByReference(ctx context.Context, externalReference string) (*payment.Record, error)
	Create(ctx context.Context, record *payment.Record) error
	Update(ctx context.Context, record *payment.Record) error

	// ListPendingOlderThan feeds the reconciliation pass: records still in a
	// non-terminal status whose last update is at least ageSeconds old.
	ListPendingOlderThan(ctx context.Context, ageSeconds int, limit int) ([]*payment.Record, error)
}
