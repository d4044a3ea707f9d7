package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount      = errors.New("payment: amount must be zero or greater")
	ErrNoStrategySelected = errors.New("payment: strategy not set")
)

// Receipt describes a completed payment.
type Receipt struct {
	Method  string
	Amount  decimal.Decimal
	Message string
}

// Strategy is a pluggable payment method. Adding a method only requires a new
// type satisfying this interface and a case in NewStrategy.
type Strategy interface {
	Pay(ctx context.Context, amount decimal.Decimal) (Receipt, error)
	MethodName() string
}

type Cash struct{}

func (Cash) MethodName() string { return "Cash" }

func (c Cash) Pay(ctx context.Context, amount decimal.Decimal) (Receipt, error) {
	return settle(ctx, c, amount, "Paid $%s in cash.")
}

type Card struct{}

func (Card) MethodName() string { return "Credit / Debit Card" }

func (c Card) Pay(ctx context.Context, amount decimal.Decimal) (Receipt, error) {
	return settle(ctx, c, amount, "Paid $%s by credit/debit card.")
}

type GCash struct{}

func (GCash) MethodName() string { return "GCash" }

func (g GCash) Pay(ctx context.Context, amount decimal.Decimal) (Receipt, error) {
	return settle(ctx, g, amount, "Paid $%s via GCash.")
}

// settle simulates a payment that always succeeds for non-negative amounts.
func settle(ctx context.Context, s Strategy, amount decimal.Decimal, format string) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	if amount.IsNegative() {
		return Receipt{}, ErrInvalidAmount
	}
	return Receipt{
		Method:  s.MethodName(),
		Amount:  amount,
		Message: fmt.Sprintf(format, amount.StringFixed(2)),
	}, nil
}
