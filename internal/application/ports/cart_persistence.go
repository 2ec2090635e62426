package ports

import (
	"context"

	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	"github.com/girafadepapel/storefront-service/internal/domain/order"
)

// CartPersistence is the durable slot the cart store mirrors every state
// transition into, keyed by the shopper's session. Load returns (nil, nil)
// when nothing usable is stored; absent and corrupt slots look the same to
// the caller.
type CartPersistence interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c cart.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// OrderSnapshotStore keeps the most recently submitted order per session so
// the post-checkout result pages can render a summary.
type OrderSnapshotStore interface {
	SaveLast(ctx context.Context, sessionID string, o *order.Order) error
	GetLast(ctx context.Context, sessionID string) (*order.Order, error)
}
