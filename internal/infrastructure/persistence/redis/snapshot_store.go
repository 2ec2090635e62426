package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/domain/order"
)

// SnapshotStore keeps the last submitted order per session so the payment
// result pages can show a summary without a database round trip.
type SnapshotStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewSnapshotStore(conn *Connection, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		client: conn.GetClient(),
		ttl:    ttl,
	}
}

func snapshotKey(sessionID string) string {
	return "order:last:" + sessionID
}

func (s *SnapshotStore) SaveLast(ctx context.Context, sessionID string, o *order.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKey(sessionID), data, s.ttl).Err()
}

func (s *SnapshotStore) GetLast(ctx context.Context, sessionID string) (*order.Order, error) {
	data, err := s.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if err == goredis.Nil {
		return nil, errors.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	var o order.Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errors.ErrOrderNotFound
	}
	return &o, nil
}
