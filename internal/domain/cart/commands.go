package cart

// Command is the tagged union of cart mutations. Apply is a pure transition
// function; persistence and ID generation live with the caller.
type Command interface {
	isCommand()
}

type AddItem struct {
	Item Item
}

type RemoveItem struct {
	ItemID string
}

type UpdateQuantity struct {
	ItemID   string
	Quantity int
}

type Clear struct{}

type SetShipping struct {
	Value float64
}

type SetDiscount struct {
	Value float64
}

func (AddItem) isCommand()        {}
func (RemoveItem) isCommand()     {}
func (UpdateQuantity) isCommand() {}
func (Clear) isCommand()          {}
func (SetShipping) isCommand()    {}
func (SetDiscount) isCommand()    {}

// Apply returns the next cart state. It never mutates its input: lines are
// copied before any change so callers can hold on to previous states.
func Apply(c Cart, cmd Command) Cart {
	switch cmd := cmd.(type) {
	case AddItem:
		return recalculate(addItem(c, cmd.Item))

	case RemoveItem:
		return recalculate(removeItem(c, cmd.ItemID))

	case UpdateQuantity:
		if cmd.Quantity <= 0 {
			return recalculate(removeItem(c, cmd.ItemID))
		}
		items := make([]Item, len(c.Items))
		copy(items, c.Items)
		for i := range items {
			if items[i].ID == cmd.ItemID {
				items[i].Quantity = cmd.Quantity
			}
		}
		c.Items = items
		return recalculate(c)

	case Clear:
		return Empty()

	case SetShipping:
		c.Shipping = cmd.Value
		return recalculate(c)

	case SetDiscount:
		c.Discount = cmd.Value
		return recalculate(c)

	default:
		return c
	}
}

func addItem(c Cart, item Item) Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)

	for i := range items {
		if items[i].SameLine(item) {
			items[i].Quantity += item.Quantity
			c.Items = items
			return c
		}
	}

	c.Items = append(items, item)
	return c
}

func removeItem(c Cart, itemID string) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	c.Items = items
	return c
}
