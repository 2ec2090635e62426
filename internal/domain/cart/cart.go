package cart

import (
	"math"
)

// Item is a single line in the cart. Two additions collapse into one line
// when product, color and size all match; the variant fields therefore take
// part in line identity, the generated ID does not.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
}

func (i Item) SameLine(other Item) bool {
	return i.ProductID == other.ProductID && i.Color == other.Color && i.Size == other.Size
}

type Cart struct {
	Items    []Item  `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func Empty() Cart {
	return Cart{Items: []Item{}}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the total quantity across all lines, not the line count.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// recalculate derives subtotal and total from the lines. Totals are rounded
// to 2 decimal places and the total never goes below zero.
func recalculate(c Cart) Cart {
	subtotal := 0.0
	for _, item := range c.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	c.Subtotal = round2(subtotal)
	c.Total = round2(math.Max(0, subtotal+c.Shipping-c.Discount))
	return c
}
