package order

import (
	"context"
	"fmt"

	domain "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/observability/logctx"
)

// Service exposes the read side of the order history.
type Service struct {
	repo domain.Store
	log  observability.Logger
}

func NewService(repo domain.Store, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		repo: repo,
		log:  logger.With(observability.F("component", "order_service")),
	}
}

// History returns every placed order, oldest first.
func (s *Service) History(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		logctx.FromOr(ctx, s.log).Error("order_history_failed", observability.F("error", err.Error()))
		return nil, fmt.Errorf("order: history: %w", err)
	}
	return orders, nil
}

// Find returns a single order by id.
func (s *Service) Find(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order: find %d: %w", id, err)
	}
	return o, nil
}
