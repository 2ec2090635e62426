package cartstore

import (
	"context"

	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	"github.com/girafadepapel/storefront-service/internal/pkg/generator"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// Store owns the cart aggregate for each session. Reads load from the
// persistence slot (empty cart when absent or corrupt); every mutation runs
// through the pure reducer and is mirrored back to the slot. A failed save is
// logged, not surfaced: the in-flight state is still returned and the slot
// catches up on the next mutation.
type Store struct {
	persistence ports.CartPersistence
	log         *logger.Logger
}

func New(persistence ports.CartPersistence, log *logger.Logger) *Store {
	return &Store{
		persistence: persistence,
		log:         log,
	}
}

func (s *Store) Get(ctx context.Context, sessionID string) cart.Cart {
	loaded, err := s.persistence.Load(ctx, sessionID)
	if err != nil {
		s.log.Error("Failed to load cart", "session_id", sessionID, "error", err.Error())
		return cart.Empty()
	}
	if loaded == nil {
		return cart.Empty()
	}
	return *loaded
}

func (s *Store) Dispatch(ctx context.Context, sessionID string, cmd cart.Command) cart.Cart {
	next := cart.Apply(s.Get(ctx, sessionID), cmd)

	if err := s.persistence.Save(ctx, sessionID, next); err != nil {
		s.log.Error("Failed to persist cart", "session_id", sessionID, "error", err.Error())
	}

	return next
}

// AddItem assigns the opaque line id before dispatching; the reducer itself
// stays free of randomness.
func (s *Store) AddItem(ctx context.Context, sessionID string, item cart.Item) cart.Cart {
	if item.ID == "" {
		item.ID = generator.NewItemID()
	}
	return s.Dispatch(ctx, sessionID, cart.AddItem{Item: item})
}

func (s *Store) RemoveItem(ctx context.Context, sessionID, itemID string) cart.Cart {
	return s.Dispatch(ctx, sessionID, cart.RemoveItem{ItemID: itemID})
}

func (s *Store) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) cart.Cart {
	return s.Dispatch(ctx, sessionID, cart.UpdateQuantity{ItemID: itemID, Quantity: quantity})
}

func (s *Store) SetShipping(ctx context.Context, sessionID string, value float64) cart.Cart {
	return s.Dispatch(ctx, sessionID, cart.SetShipping{Value: value})
}

func (s *Store) SetDiscount(ctx context.Context, sessionID string, value float64) cart.Cart {
	return s.Dispatch(ctx, sessionID, cart.SetDiscount{Value: value})
}

func (s *Store) Clear(ctx context.Context, sessionID string) cart.Cart {
	return s.Dispatch(ctx, sessionID, cart.Clear{})
}
