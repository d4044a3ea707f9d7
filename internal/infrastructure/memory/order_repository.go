package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
)

// OrderRepository is the append-only, in-memory order history.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []*domain.Order
	byID   map[int64]int
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		byID: make(map[int64]int),
	}
}

// Append stores a copy of order. Ids must be unique and strictly increasing.
func (r *OrderRepository) Append(ctx context.Context, order *domain.Order) error {
	_ = ctx
	if order == nil || order.ID <= 0 {
		return fmt.Errorf("order repository: %w", domain.ErrInvalidID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[order.ID]; exists {
		return domain.ErrConflict
	}
	if n := len(r.orders); n > 0 && r.orders[n-1].ID >= order.ID {
		return fmt.Errorf("%w: id %d not after %d", domain.ErrConflict, order.ID, r.orders[n-1].ID)
	}

	r.byID[order.ID] = len(r.orders)
	r.orders = append(r.orders, order.Clone())
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.orders[idx].Clone(), nil
}

// List returns copies of all orders in the order they were placed.
func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (r *OrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
