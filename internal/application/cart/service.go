package cart

import (
	"context"
	"fmt"

	domcart "github.com/Zhima-Mochi/minishop-console/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-console/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/observability/logctx"
)

const componentCart = "cart_service"

// Service drives catalog browsing and cart mutations for a session.
type Service struct {
	catalog catalog.Repository
	log     observability.Logger
}

func NewService(repo catalog.Repository, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		catalog: repo,
		log:     logger.With(observability.F("component", componentCart)),
	}
}

// Products lists the catalog in its fixed order.
func (s *Service) Products(ctx context.Context) []catalog.Item {
	return s.catalog.List(ctx)
}

// Lookup resolves a product id entered by the user.
func (s *Service) Lookup(ctx context.Context, itemID string) (catalog.Item, error) {
	item, err := s.catalog.Get(ctx, itemID)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("cart: lookup %q: %w", itemID, err)
	}
	return item, nil
}

type AddItemInput struct {
	Cart     *domcart.Cart
	ItemID   string
	Quantity int
}

// AddItem looks up the item and merges it into the cart.
func (s *Service) AddItem(ctx context.Context, in AddItemInput) (catalog.Item, error) {
	logger := logctx.FromOr(ctx, s.log)

	item, err := s.Lookup(ctx, in.ItemID)
	if err != nil {
		logger.Debug("cart_add_unknown_item", observability.F("item_id", in.ItemID))
		return catalog.Item{}, err
	}
	if err := in.Cart.Add(item, in.Quantity); err != nil {
		return catalog.Item{}, err
	}

	logger.Info("cart_item_added",
		observability.F("item_id", item.ID),
		observability.F("quantity", in.Quantity),
		observability.F("cart_lines", in.Cart.Len()),
		observability.F("cart_total", in.Cart.Total().StringFixed(2)),
	)
	return item, nil
}
