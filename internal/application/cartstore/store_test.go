package cartstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

type failingPersistence struct {
	loadErr error
	saveErr error
}

func (f *failingPersistence) Load(context.Context, string) (*cart.Cart, error) {
	return nil, f.loadErr
}

func (f *failingPersistence) Save(context.Context, string, cart.Cart) error {
	return f.saveErr
}

func (f *failingPersistence) Delete(context.Context, string) error {
	return nil
}

func newTestStore() *Store {
	return New(NewMemoryPersistence(), logger.NewLogger())
}

func TestGetReturnsEmptyCartForNewSession(t *testing.T) {
	store := newTestStore()

	c := store.Get(context.Background(), "session-1")

	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.Items)
}

func TestAddItemPersistsAcrossReads(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.AddItem(ctx, "session-1", cart.Item{
		ProductID: "prod-1",
		Name:      "Planner Semanal",
		UnitPrice: 42.90,
		Quantity:  1,
	})

	c := store.Get(ctx, "session-1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, 42.90, c.Total)
}

func TestAddItemAssignsLineID(t *testing.T) {
	store := newTestStore()

	c := store.AddItem(context.Background(), "session-1", cart.Item{
		ProductID: "prod-1",
		Name:      "Planner Semanal",
		UnitPrice: 42.90,
		Quantity:  1,
	})

	require.Len(t, c.Items, 1)
	assert.NotEmpty(t, c.Items[0].ID)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.AddItem(ctx, "session-1", cart.Item{ProductID: "prod-1", Name: "A", UnitPrice: 10, Quantity: 1})

	assert.True(t, store.Get(ctx, "session-2").IsEmpty())
}

func TestClearEmptiesTheSlot(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.AddItem(ctx, "session-1", cart.Item{ProductID: "prod-1", Name: "A", UnitPrice: 10, Quantity: 1})
	store.Clear(ctx, "session-1")

	assert.True(t, store.Get(ctx, "session-1").IsEmpty())
}

func TestGetSwallowsLoadFailure(t *testing.T) {
	store := New(&failingPersistence{loadErr: errors.New("connection refused")}, logger.NewLogger())

	c := store.Get(context.Background(), "session-1")

	assert.True(t, c.IsEmpty())
}

func TestDispatchReturnsNextStateDespiteSaveFailure(t *testing.T) {
	store := New(&failingPersistence{saveErr: errors.New("connection refused")}, logger.NewLogger())

	c := store.AddItem(context.Background(), "session-1", cart.Item{
		ProductID: "prod-1",
		Name:      "A",
		UnitPrice: 10,
		Quantity:  2,
	})

	require.Len(t, c.Items, 1)
	assert.Equal(t, 20.00, c.Total)
}

func TestUpdateQuantityAndRemoveThroughStore(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	c := store.AddItem(ctx, "session-1", cart.Item{ProductID: "prod-1", Name: "A", UnitPrice: 10, Quantity: 1})
	lineID := c.Items[0].ID

	c = store.UpdateQuantity(ctx, "session-1", lineID, 3)
	assert.Equal(t, 30.00, c.Total)

	c = store.RemoveItem(ctx, "session-1", lineID)
	assert.True(t, c.IsEmpty())
}
