package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// UnknownMethod is reported when no strategy has been selected.
const UnknownMethod = "Unknown"

// Selector holds the strategy chosen for a single checkout. It is a plain
// value owned by the caller; there is no process-wide instance.
type Selector struct {
	strategy Strategy
}

func NewSelector() *Selector {
	return &Selector{}
}

// Select replaces the current strategy and hands the previous one (possibly
// nil) back to the caller.
func (s *Selector) Select(strategy Strategy) Strategy {
	prev := s.strategy
	s.strategy = strategy
	return prev
}

func (s *Selector) Selected() bool {
	return s != nil && s.strategy != nil
}

// Execute delegates to the selected strategy.
func (s *Selector) Execute(ctx context.Context, amount decimal.Decimal) (Receipt, error) {
	if !s.Selected() {
		return Receipt{}, ErrNoStrategySelected
	}
	return s.strategy.Pay(ctx, amount)
}

func (s *Selector) CurrentMethodName() string {
	if !s.Selected() {
		return UnknownMethod
	}
	return s.strategy.MethodName()
}
