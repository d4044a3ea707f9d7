package order

import "context"

// Store is the append-only order history. Entries are never updated or removed.
type Store interface {
	Append(ctx context.Context, order *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
}
