package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem_Valid(t *testing.T) {
	item, err := NewItem("1", "Paper", decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, "1", item.ID)
	assert.Equal(t, "Paper", item.Name)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(20)))
}

func TestNewItem_ZeroPriceAllowed(t *testing.T) {
	_, err := NewItem("9", "Sample", decimal.Zero)
	assert.NoError(t, err)
}

func TestNewItem_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		title string
		price decimal.Decimal
	}{
		{name: "missing id", id: "", title: "Paper", price: decimal.NewFromInt(1)},
		{name: "missing name", id: "1", title: "", price: decimal.NewFromInt(1)},
		{name: "negative price", id: "1", title: "Paper", price: decimal.NewFromInt(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewItem(tt.id, tt.title, tt.price)
			assert.ErrorIs(t, err, ErrInvalidItem)
		})
	}
}

func TestMustNewItem_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustNewItem("", "", decimal.Zero)
	})
}
