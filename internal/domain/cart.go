package domain

import "time"

// Cart represents a session-scoped shopping cart awaiting checkout.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem pairs a product snapshot with a requested quantity. The snapshot
// is taken when the item is added: later admin edits to price or stock are
// not reflected until the item is removed and re-added.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal calculates the total price of all items in the cart (in cents),
// using each entry's snapshotted unit price rather than a live lookup.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Product.Price * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the total number of units in the cart, used for the
// cart badge.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the cart item matching the given
// product ID, or -1 if not found.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Quantity returns the quantity currently in the cart for the given product,
// or 0 if the product is not in the cart.
func (c *Cart) Quantity(productID string) int {
	if i := c.FindItemIndex(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}
