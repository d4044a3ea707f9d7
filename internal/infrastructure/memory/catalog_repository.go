package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	domain "github.com/Zhima-Mochi/minishop-console/internal/domain/catalog"
)

// CatalogRepository is a read-only, in-memory catalog seeded once at start-up.
type CatalogRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]domain.Item
}

func NewCatalogRepository(items ...domain.Item) *CatalogRepository {
	r := &CatalogRepository{
		order: make([]string, 0, len(items)),
		items: make(map[string]domain.Item, len(items)),
	}
	for _, item := range items {
		if _, exists := r.items[item.ID]; exists {
			continue
		}
		r.order = append(r.order, item.ID)
		r.items[item.ID] = item
	}
	return r
}

// DefaultCatalog returns the fixed storefront assortment.
func DefaultCatalog() []domain.Item {
	return []domain.Item{
		domain.MustNewItem("1", "Paper", decimal.NewFromInt(20)),
		domain.MustNewItem("2", "Pencil", decimal.NewFromInt(10)),
		domain.MustNewItem("3", "Notebook", decimal.NewFromInt(50)),
		domain.MustNewItem("4", "Eraser", decimal.NewFromInt(5)),
		domain.MustNewItem("5", "Stapler", decimal.NewFromInt(30)),
		domain.MustNewItem("6", "Ruler", decimal.NewFromInt(15)),
	}
}

func (r *CatalogRepository) Get(ctx context.Context, id string) (domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return domain.Item{}, domain.ErrNotFound
	}
	return item, nil
}

func (r *CatalogRepository) List(ctx context.Context) []domain.Item {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}
