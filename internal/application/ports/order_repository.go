package ports

import (
	"context"

	"github.com/girafadepapel/storefront-service/internal/domain/order"
)

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	GetByReference(ctx context.Context, reference string) (*order.Order, error)
	MarkPaid(ctx context.Context, reference string) error

	// ListUnpaidWithApprovedPayment returns references whose payment record
	// is approved but whose order row was never flipped to paid, the gap a
	// crash between the two sequential writes can leave behind.
	ListUnpaidWithApprovedPayment(ctx context.Context, limit int) ([]string, error)
}
