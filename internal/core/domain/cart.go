package domain

import "errors"

var (
	ErrItemUnavailable = errors.New("item is not available for sale")
	ErrDuplicateItem   = errors.New("item is already in the cart")
)

// CartLine holds one painting. Quantity is always 1: each painting is a
// unique physical piece and can only be sold once.
type CartLine struct {
	Item     CatalogItem
	Quantity int
}

// Cart is the in-memory, per-session collection of items about to be sold.
// Insertion order is display order. Availability is checked at add time
// only; the backend re-validates on submission.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) Add(item CatalogItem) error {
	if !item.Available() {
		return ErrItemUnavailable
	}
	for _, line := range c.lines {
		if line.Item.ID == item.ID {
			return ErrDuplicateItem
		}
	}
	c.lines = append(c.lines, CartLine{Item: item, Quantity: 1})
	return nil
}

// Remove drops the line holding itemID. Removing an absent item is a no-op.
func (c *Cart) Remove(itemID string) {
	for i, line := range c.lines {
		if line.Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a snapshot in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
