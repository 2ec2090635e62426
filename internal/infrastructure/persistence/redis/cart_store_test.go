package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	domainErrors "github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/domain/order"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

func newTestConnection(t *testing.T) (*Connection, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return &Connection{client: client}, mr
}

func sampleCart() cart.Cart {
	c := cart.Empty()
	return cart.Apply(c, cart.AddItem{Item: cart.Item{
		ID:        "line-1",
		ProductID: "prod-1",
		Name:      "Caderno Pautado",
		UnitPrice: 25.00,
		Quantity:  2,
	}})
}

func TestCartStoreRoundTrip(t *testing.T) {
	conn, _ := newTestConnection(t)
	store := NewCartStore(conn, time.Hour, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", sampleCart()))

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 50.00, loaded.Total)
}

func TestCartStoreLoadAbsentSlot(t *testing.T) {
	conn, _ := newTestConnection(t)
	store := NewCartStore(conn, time.Hour, logger.NewLogger())

	loaded, err := store.Load(context.Background(), "session-missing")

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestCartStoreDiscardsCorruptSlot(t *testing.T) {
	conn, mr := newTestConnection(t)
	store := NewCartStore(conn, time.Hour, logger.NewLogger())

	require.NoError(t, mr.Set("cart:session-1", "{not json"))

	loaded, err := store.Load(context.Background(), "session-1")

	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.False(t, mr.Exists("cart:session-1"), "corrupt slot must be deleted")
}

func TestCartStoreDelete(t *testing.T) {
	conn, mr := newTestConnection(t)
	store := NewCartStore(conn, time.Hour, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", sampleCart()))
	require.NoError(t, store.Delete(ctx, "session-1"))

	assert.False(t, mr.Exists("cart:session-1"))
}

func TestCartStoreAppliesTTL(t *testing.T) {
	conn, mr := newTestConnection(t)
	store := NewCartStore(conn, time.Hour, logger.NewLogger())

	require.NoError(t, store.Save(context.Background(), "session-1", sampleCart()))

	mr.FastForward(2 * time.Hour)

	loaded, err := store.Load(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	conn, _ := newTestConnection(t)
	store := NewSnapshotStore(conn, time.Hour)
	ctx := context.Background()

	o := order.New("pedido_1_ab", order.Customer{Name: "Ana", Email: "ana@example.com"}, sampleCart(), "pref-1",
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	require.NoError(t, store.SaveLast(ctx, "session-1", o))

	loaded, err := store.GetLast(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "pedido_1_ab", loaded.Reference)
	assert.Equal(t, 50.00, loaded.Total)
}

func TestSnapshotStoreMissingSlot(t *testing.T) {
	conn, _ := newTestConnection(t)
	store := NewSnapshotStore(conn, time.Hour)

	_, err := store.GetLast(context.Background(), "session-missing")

	assert.ErrorIs(t, err, domainErrors.ErrOrderNotFound)
}
