package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("catalog: item not found")
	ErrInvalidItem = errors.New("catalog: invalid item")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Item is a purchasable catalog entry. It is immutable once created; identity is ID.
type Item struct {
	ID        string          `validate:"required"`
	Name      string          `validate:"required"`
	UnitPrice decimal.Decimal `validate:"-"`
}

// NewItem validates and builds an Item.
func NewItem(id, name string, unitPrice decimal.Decimal) (Item, error) {
	item := Item{ID: id, Name: name, UnitPrice: unitPrice}
	if err := validate.Struct(item); err != nil {
		return Item{}, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}
	if unitPrice.IsNegative() {
		return Item{}, fmt.Errorf("%w: unit price must be zero or greater", ErrInvalidItem)
	}
	return item, nil
}

// MustNewItem is like NewItem but panics on invalid input. Intended for fixed seed data.
func MustNewItem(id, name string, unitPrice decimal.Decimal) Item {
	item, err := NewItem(id, name, unitPrice)
	if err != nil {
		panic(err)
	}
	return item
}

// Repository is the read-only catalog contract.
type Repository interface {
	Get(ctx context.Context, id string) (Item, error)
	List(ctx context.Context) []Item
}
