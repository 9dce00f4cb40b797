// Package pos implements the point-of-sale cart and pricing rules.
// Everything here is pure computation over in-memory state; no I/O.
package pos

import (
	"strconv"
	"strings"
)

type DiscountKind string

const (
	DiscountFixed      DiscountKind = "fixed"
	DiscountPercentage DiscountKind = "percentage"
)

// Discount is the single active modifier on a cart. A zero-value
// percentage discount means "no discount".
type Discount struct {
	Kind  DiscountKind
	Value int64
}

// NoDiscount is the implicit discount a fresh cart carries.
func NoDiscount() Discount {
	return Discount{Kind: DiscountPercentage, Value: 0}
}

// ParseDiscount builds a discount from raw user input. Non-numeric or
// negative input degrades to 0 rather than failing; the POS form treats
// a bad value as "no discount", it never blocks the operator.
func ParseDiscount(kind DiscountKind, rawValue string) Discount {
	v, err := strconv.ParseInt(strings.TrimSpace(rawValue), 10, 64)
	if err != nil || v < 0 {
		v = 0
	}

	return Discount{Kind: kind, Value: v}
}

// CartLine is one game in the active order.
// Quantity is always >= 1; a line dropping to 0 is removed, never kept.
type CartLine struct {
	GameID    string
	Name      string
	UnitPrice int64 // minor currency units
	Quantity  int64
}

// Cart holds the lines and discount of one checkout session.
// It is owned by a single session and discarded with it.
type Cart struct {
	Lines    []CartLine
	Discount Discount
}

func NewCart() *Cart {
	return &Cart{Discount: NoDiscount()}
}

// AddItem appends a new line with quantity 1, or bumps the quantity of
// an existing line for the same game. It cannot fail.
func (c *Cart) AddItem(gameID, name string, unitPrice int64) {
	for i := range c.Lines {
		if c.Lines[i].GameID == gameID {
			c.Lines[i].Quantity++
			return
		}
	}

	c.Lines = append(c.Lines, CartLine{
		GameID:    gameID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// RemoveItem drops the line for gameID entirely, regardless of quantity.
// No-op when the line is absent.
func (c *Cart) RemoveItem(gameID string) {
	for i := range c.Lines {
		if c.Lines[i].GameID == gameID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// ChangeQuantity adjusts the line for gameID by delta (positive or
// negative). A resulting quantity <= 0 removes the line. No-op when the
// line is absent.
func (c *Cart) ChangeQuantity(gameID string, delta int64) {
	for i := range c.Lines {
		if c.Lines[i].GameID != gameID {
			continue
		}

		newQty := c.Lines[i].Quantity + delta
		if newQty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}

		c.Lines[i].Quantity = newQty

		return
	}
}

// ApplyDiscount replaces the active discount wholesale. Discounts never
// stack; the prior one has no residual effect.
func (c *Cart) ApplyDiscount(kind DiscountKind, rawValue string) {
	c.Discount = ParseDiscount(kind, rawValue)
}

// ClearDiscount resets the cart to the implicit zero discount.
func (c *Cart) ClearDiscount() {
	c.Discount = NoDiscount()
}

// ParsePrice converts an upstream price string into minor units.
// Upstream sends comma-grouped integers ("45,000"); grouping is
// stripped and anything unparsable degrades to 0.
func ParsePrice(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}
