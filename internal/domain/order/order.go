package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Zhima-Mochi/minishop-console/internal/domain/cart"
)

var (
	ErrNotFound  = errors.New("order: not found")
	ErrConflict  = errors.New("order: id already used")
	ErrNoLines   = errors.New("order: at least one line is required")
	ErrInvalidID = errors.New("order: id must be greater than zero")
	ErrNoMethod  = errors.New("order: payment method is required")
)

// Line is a snapshot of a cart line taken at checkout. It does not reference
// the catalog item, so later catalog changes cannot alter past orders.
type Line struct {
	ItemID    string
	ItemName  string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID            int64
	Total         decimal.Decimal
	PaymentMethod string
	Lines         []Line
	PlacedAt      time.Time
}

// SnapshotLines copies cart lines into order lines.
func SnapshotLines(lines []cart.Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{
			ItemID:    l.Item.ID,
			ItemName:  l.Item.Name,
			UnitPrice: l.Item.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return out
}

func New(id int64, total decimal.Decimal, paymentMethod string, lines []Line) (*Order, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if paymentMethod == "" {
		return nil, ErrNoMethod
	}
	return &Order{
		ID:            id,
		Total:         total,
		PaymentMethod: paymentMethod,
		Lines:         append([]Line(nil), lines...),
		PlacedAt:      time.Now().UTC(),
	}, nil
}

// ItemCount returns the sum of all line quantities.
func (o *Order) ItemCount() int {
	var n int
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}
