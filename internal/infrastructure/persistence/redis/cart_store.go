package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// CartStore persists one cart per shopper session as a JSON blob with a
// sliding TTL. A slot that is missing or unreadable loads as no cart at all,
// so a corrupted entry costs the shopper their cart, never an error page.
type CartStore struct {
	client *goredis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewCartStore(conn *Connection, ttl time.Duration, log *logger.Logger) *CartStore {
	return &CartStore{
		client: conn.GetClient(),
		ttl:    ttl,
		log:    log,
	}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *CartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.log.Warn("Discarding unreadable cart", "session_id", sessionID, "error", err.Error())
		s.client.Del(ctx, cartKey(sessionID))
		return nil, nil
	}

	return &c, nil
}

func (s *CartStore) Save(ctx context.Context, sessionID string, c cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err()
}

func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}
