package pos

import "github.com/google/uuid"

// CartLine is one item in the cart with its accumulated quantity.
type CartLine struct {
	Item     Item
	Quantity int
}

// LineTotal returns the line's price in cents.
func (l CartLine) LineTotal() int64 {
	return l.Item.Price * int64(l.Quantity)
}

// Cart holds the lines of an in-progress sale. Lines keep their insertion
// order; adding an item already in the cart increments its quantity in
// place rather than appending a duplicate line.
type Cart struct {
	lines []CartLine
	index map[uuid.UUID]int
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{index: make(map[uuid.UUID]int)}
}

// Add puts one unit of the item in the cart. Items with zero sellable
// stock are rejected; quantities above the snapshot stock are allowed
// and left for the authoritative stock check at checkout, since the
// snapshot may be stale either way.
func (c *Cart) Add(item Item) error {
	if item.Stock <= 0 {
		return &OutOfStockError{ItemID: item.ID, Name: item.Name}
	}

	if i, ok := c.index[item.ID]; ok {
		c.lines[i].Quantity++
		return nil
	}

	c.index[item.ID] = len(c.lines)
	c.lines = append(c.lines, CartLine{Item: item, Quantity: 1})
	return nil
}

// Remove drops the line for the given item entirely, regardless of its
// quantity. Removing an absent item is a no-op.
func (c *Cart) Remove(itemID uuid.UUID) {
	i, ok := c.index[itemID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, itemID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].Item.ID] = j
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[uuid.UUID]int)
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal returns the sum of all line totals in cents.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.LineTotal()
	}
	return sum
}
