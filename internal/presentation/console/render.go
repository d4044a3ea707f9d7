package console

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	domcart "github.com/Zhima-Mochi/minishop-console/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-console/internal/domain/catalog"
	domorder "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
)

type renderer struct {
	w        io.Writer
	currency string
}

func (r renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r renderer) money(d decimal.Decimal) string {
	return r.currency + d.StringFixed(2)
}

func (r renderer) products(items []catalog.Item) {
	r.printf("\nAvailable Products:\n")
	r.printf("%-12s%-20s%-10s\n", "Product ID", "Name", "Price")
	for _, it := range items {
		r.printf("%-12s%-20s%-10s\n", it.ID, it.Name, r.money(it.UnitPrice))
	}
}

func (r renderer) cartLines(title string, lines []domcart.Line) {
	r.printf("\n%s:\n", title)
	r.printf("%-12s%-20s%-10s%-10s%-10s\n", "Product ID", "Name", "Price", "Quantity", "Total")
	for _, l := range lines {
		r.printf("%-12s%-20s%-10s%-10d%-10s\n",
			l.Item.ID, l.Item.Name, r.money(l.Item.UnitPrice), l.Quantity, r.money(l.Total()))
	}
}

func (r renderer) order(o *domorder.Order) {
	r.printf("Order ID: %d\n", o.ID)
	r.printf("Total Amount: %s\n", r.money(o.Total))
	r.printf("Payment Method: %s\n", o.PaymentMethod)
	r.printf("Order Details:\n")
	r.printf("%-12s%-20s%-10s%-10s\n", "Product ID", "Name", "Price", "Quantity")
	for _, l := range o.Lines {
		r.printf("%-12s%-20s%-10s%-10d\n", l.ItemID, l.ItemName, r.money(l.UnitPrice), l.Quantity)
	}
	r.printf("\n")
}
