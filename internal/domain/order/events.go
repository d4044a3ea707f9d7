package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlacedEvent is emitted after an order has been paid for and stored.
type PlacedEvent struct {
	OrderID       int64
	PaymentMethod string
	Total         decimal.Decimal
	ItemCount     int
	OccurredAt    time.Time
}

func (PlacedEvent) EventName() string { return "order.placed" }

func NewPlacedEvent(o *Order) PlacedEvent {
	return PlacedEvent{
		OrderID:       o.ID,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		ItemCount:     o.ItemCount(),
		OccurredAt:    time.Now().UTC(),
	}
}
