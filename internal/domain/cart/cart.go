package cart

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Zhima-Mochi/minishop-console/internal/domain/catalog"
)

var (
	ErrInvalidQuantity  = errors.New("cart: quantity must be greater than zero")
	ErrQuantityOverflow = errors.New("cart: quantity too large")
)

// Line is the quantity of one catalog item currently intended for purchase.
type Line struct {
	Item     catalog.Item
	Quantity int
}

// Total returns UnitPrice × Quantity.
func (l Line) Total() decimal.Decimal {
	return l.Item.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds one line per distinct item id in insertion order.
// The zero value is an empty cart ready to use.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges quantity into the line for item.ID, or appends a new line.
// A merged line keeps its original position. A merge that would overflow int
// fails with ErrQuantityOverflow and leaves the line unchanged.
func (c *Cart) Add(item catalog.Item, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i := c.indexOf(item.ID); i >= 0 {
		if quantity > math.MaxInt-c.lines[i].Quantity {
			return ErrQuantityOverflow
		}
		c.lines[i].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: quantity})
	return nil
}

// Remove takes quantity away from the line for itemID. A line that drops to
// zero or below is removed entirely. Unknown ids are ignored.
func (c *Cart) Remove(itemID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i := c.indexOf(itemID)
	if i < 0 {
		return nil
	}
	c.lines[i].Quantity -= quantity
	if c.lines[i].Quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	return nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// ItemCount returns the sum of all quantities.
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) indexOf(itemID string) int {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			return i
		}
	}
	return -1
}
