package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notebook(id string, qty int) Item {
	return Item{
		ID:        id,
		ProductID: "prod-notebook",
		Name:      "Caderno Pautado",
		UnitPrice: 25.00,
		Quantity:  qty,
		Color:     "rosa",
		Size:      "A5",
	}
}

func TestApplyAddItemNewLine(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 2)})

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 50.00, c.Subtotal)
	assert.Equal(t, 50.00, c.Total)
}

func TestApplyAddItemMergesSameVariant(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 1)})
	c = Apply(c, AddItem{Item: notebook("line-2", 2)})

	require.Len(t, c.Items, 1)
	assert.Equal(t, "line-1", c.Items[0].ID)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 75.00, c.Subtotal)
}

func TestApplyAddItemDifferentVariantNewLine(t *testing.T) {
	blue := notebook("line-2", 1)
	blue.Color = "azul"

	c := Apply(Empty(), AddItem{Item: notebook("line-1", 1)})
	c = Apply(c, AddItem{Item: blue})

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 50.00, c.Subtotal)
}

func TestApplyRemoveItem(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 2)})
	c = Apply(c, RemoveItem{ItemID: "line-1"})

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.00, c.Subtotal)
	assert.Equal(t, 0.00, c.Total)
}

func TestApplyRemoveUnknownItemIsNoop(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 2)})
	next := Apply(c, RemoveItem{ItemID: "missing"})

	assert.Equal(t, c, next)
}

func TestApplyUpdateQuantity(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 1)})
	c = Apply(c, UpdateQuantity{ItemID: "line-1", Quantity: 4})

	require.Len(t, c.Items, 1)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, 100.00, c.Subtotal)
}

func TestApplyUpdateQuantityToZeroRemovesLine(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 2)})
	c = Apply(c, UpdateQuantity{ItemID: "line-1", Quantity: 0})

	assert.True(t, c.IsEmpty())
}

func TestApplyUpdateQuantityNegativeRemovesLine(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 2)})
	c = Apply(c, UpdateQuantity{ItemID: "line-1", Quantity: -3})

	assert.True(t, c.IsEmpty())
}

func TestApplyClear(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 2)})
	c = Apply(c, SetShipping{Value: 15.00})
	c = Apply(c, Clear{})

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.00, c.Shipping)
	assert.Equal(t, 0.00, c.Total)
}

func TestApplyShippingAndDiscountTotals(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 2)})
	c = Apply(c, SetShipping{Value: 18.50})
	c = Apply(c, SetDiscount{Value: 10.00})

	assert.Equal(t, 50.00, c.Subtotal)
	assert.Equal(t, 58.50, c.Total)
}

func TestApplyTotalNeverNegative(t *testing.T) {
	c := Apply(Empty(), AddItem{Item: notebook("line-1", 1)})
	c = Apply(c, SetDiscount{Value: 100.00})

	assert.Equal(t, 0.00, c.Total)
}

func TestApplyRoundsToTwoDecimals(t *testing.T) {
	item := notebook("line-1", 3)
	item.UnitPrice = 10.555

	c := Apply(Empty(), AddItem{Item: item})

	assert.Equal(t, 31.67, c.Subtotal)
	assert.Equal(t, 31.67, c.Total)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	original := Apply(Empty(), AddItem{Item: notebook("line-1", 1)})

	_ = Apply(original, UpdateQuantity{ItemID: "line-1", Quantity: 9})
	_ = Apply(original, AddItem{Item: notebook("line-2", 5)})
	_ = Apply(original, RemoveItem{ItemID: "line-1"})

	require.Len(t, original.Items, 1)
	assert.Equal(t, 1, original.Items[0].Quantity)
	assert.Equal(t, 25.00, original.Subtotal)
}

func TestItemCountSumsQuantities(t *testing.T) {
	blue := notebook("line-2", 3)
	blue.Color = "azul"

	c := Apply(Empty(), AddItem{Item: notebook("line-1", 2)})
	c = Apply(c, AddItem{Item: blue})

	assert.Equal(t, 5, c.ItemCount())
}
