package console

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/Zhima-Mochi/minishop-console/internal/application"
	cartapp "github.com/Zhima-Mochi/minishop-console/internal/application/cart"
	checkoutapp "github.com/Zhima-Mochi/minishop-console/internal/application/checkout"
	domcart "github.com/Zhima-Mochi/minishop-console/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-console/internal/domain/catalog"
	domorder "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-console/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/observability/logctx"
)

const (
	menuViewProducts = 1
	menuViewCart     = 2
	menuViewOrders   = 3
	menuExit         = 4

	DefaultCurrency = "$"
)

type Shop interface {
	Products(ctx context.Context) []catalog.Item
	Lookup(ctx context.Context, itemID string) (catalog.Item, error)
	AddItem(ctx context.Context, in cartapp.AddItemInput) (catalog.Item, error)
}

type OrderHistory interface {
	History(ctx context.Context) ([]*domorder.Order, error)
}

type Deps struct {
	Shop     Shop
	Orders   OrderHistory
	Checkout application.UseCase[checkoutapp.Input, *checkoutapp.Result]

	// Currency prefixes every rendered amount. Defaults to "$".
	Currency string
	Tel      observability.Observability
}

// Controller runs the interactive storefront for a single user. It owns the
// session cart; every other piece of state lives behind Deps.
type Controller struct {
	in   *reader
	out  renderer
	cart *domcart.Cart

	shop     Shop
	orders   OrderHistory
	checkout application.UseCase[checkoutapp.Input, *checkoutapp.Result]

	log          observability.Logger
	invalidInput observability.Counter // console_invalid_input_total{prompt}
}

func NewController(in io.Reader, out io.Writer, deps Deps) *Controller {
	tel := deps.Tel
	if tel == nil {
		tel = observability.Nop()
	}
	currency := deps.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Controller{
		in:           newReader(in),
		out:          renderer{w: out, currency: currency},
		cart:         domcart.New(),
		shop:         deps.Shop,
		orders:       deps.Orders,
		checkout:     deps.Checkout,
		log:          tel.Logger().With(observability.F("component", "console")),
		invalidInput: tel.Metrics().Counter(observability.MInvalidInput),
	}
}

// Cart exposes the session cart.
func (c *Controller) Cart() *domcart.Cart { return c.cart }

// Run shows the main menu until the user exits or the input ends. Neither
// case is an error.
func (c *Controller) Run(ctx context.Context) error {
	logger := logctx.FromOr(ctx, c.log)
	logger.Info("session_started")

	err := c.loop(ctx)
	switch {
	case err == nil:
		logger.Info("session_ended", observability.F("reason", "exit"))
		return nil
	case errors.Is(err, errInputClosed):
		logger.Info("session_ended", observability.F("reason", "input_closed"))
		return nil
	default:
		logger.Warn("session_aborted", observability.F("error", err.Error()))
		return err
	}
}

func (c *Controller) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.out.printf("\n=== E-Commerce System Menu ===\n")
		c.out.printf("1. View Products\n")
		c.out.printf("2. View Shopping Cart\n")
		c.out.printf("3. View Orders\n")
		c.out.printf("4. Exit\n")
		c.out.printf("Enter your choice (1-4): ")

		line, err := c.in.readLine()
		if err != nil {
			return err
		}
		if strings.Trim(line, cutset) == "" {
			continue
		}

		choice, perr := parseMenuChoice(line, menuViewProducts, menuExit)
		switch {
		case errors.Is(perr, errOutOfRange):
			c.reject(ctx, "menu", line)
			c.out.printf("Invalid choice. Please enter a number (1-4).\n")
			continue
		case perr != nil:
			c.reject(ctx, "menu", line)
			c.out.printf("Invalid input. Please enter a number (1-4).\n")
			continue
		}

		switch choice {
		case menuViewProducts:
			err = c.viewProducts(ctx)
		case menuViewCart:
			err = c.viewCart(ctx)
		case menuViewOrders:
			err = c.viewOrders(ctx)
		case menuExit:
			c.out.printf("Thank you for using our e-commerce system!\n")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) viewProducts(ctx context.Context) error {
	c.out.products(c.shop.Products(ctx))

	for {
		c.out.printf("\nEnter the ID of the product you want to add to the shopping cart: ")
		line, err := c.in.readLine()
		if err != nil {
			return err
		}
		itemID := strings.Trim(line, cutset)
		if _, lerr := c.shop.Lookup(ctx, itemID); lerr != nil {
			c.reject(ctx, "product_id", line)
			c.out.printf("Invalid product ID. Please try again.\n")
			continue
		}

		qty, err := c.promptQuantity(ctx)
		if err != nil {
			return err
		}
		if _, aerr := c.shop.AddItem(ctx, cartapp.AddItemInput{Cart: c.cart, ItemID: itemID, Quantity: qty}); aerr != nil {
			c.out.printf("Could not add product: %v\n", aerr)
			continue
		}
		c.out.printf("Product added successfully!\n")

		more, err := c.promptYesNo(ctx, "add_more",
			"Do you want to add another product? (Y/N): ",
			"Invalid input. Please enter exactly Y or N.\n")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (c *Controller) viewCart(ctx context.Context) error {
	if c.cart.IsEmpty() {
		c.out.printf("\nYour shopping cart is empty.\n")
		return nil
	}

	c.out.cartLines("Shopping Cart", c.cart.Lines())
	c.out.printf("Total: %s\n", c.out.money(c.cart.Total()))

	confirm, err := c.promptYesNo(ctx, "confirm_checkout",
		"Do you want to check out all the products? (Y/N): ",
		"Invalid choice. Please enter exactly Y or N.\n")
	if err != nil || !confirm {
		return err
	}
	return c.runCheckout(ctx)
}

func (c *Controller) runCheckout(ctx context.Context) error {
	if c.cart.IsEmpty() {
		c.out.printf("Your shopping cart is empty!\n")
		return nil
	}

	c.out.cartLines("Products for Checkout", c.cart.Lines())
	c.out.printf("Total Amount: %s\n", c.out.money(c.cart.Total()))

	strategy, err := c.promptPayment(ctx)
	if err != nil {
		return err
	}

	res, cerr := c.checkout.Execute(ctx, checkoutapp.Input{Cart: c.cart, Strategy: strategy})
	switch {
	case errors.Is(cerr, checkoutapp.ErrEmptyCart):
		c.out.printf("Your shopping cart is empty!\n")
	case cerr != nil:
		c.out.printf("Payment failed: %v\n", cerr)
	default:
		c.out.printf("%s\n", res.Receipt.Message)
		c.out.printf("\nYou have successfully checked out the products!\n")
	}
	return nil
}

func (c *Controller) viewOrders(ctx context.Context) error {
	orders, err := c.orders.History(ctx)
	if err != nil {
		c.out.printf("Could not load orders: %v\n", err)
		return nil
	}
	if len(orders) == 0 {
		c.out.printf("\nNo orders have been placed yet.\n")
		return nil
	}

	c.out.printf("\nOrder History:\n")
	for _, o := range orders {
		c.out.order(o)
	}
	return nil
}

func (c *Controller) promptQuantity(ctx context.Context) (int, error) {
	for {
		c.out.printf("Enter quantity: ")
		line, err := c.in.readLine()
		if err != nil {
			return 0, err
		}
		qty, perr := parseQuantity(line)
		switch {
		case perr == nil:
			return qty, nil
		case errors.Is(perr, errNotPositive):
			c.reject(ctx, "quantity", line)
			c.out.printf("Quantity must be positive. Please try again.\n")
		default:
			c.reject(ctx, "quantity", line)
			c.out.printf("Invalid quantity. Please enter a positive number without spaces or symbols.\n")
		}
	}
}

func (c *Controller) promptYesNo(ctx context.Context, prompt, question, invalid string) (bool, error) {
	for {
		c.out.printf("%s", question)
		line, err := c.in.readLine()
		if err != nil {
			return false, err
		}
		yes, perr := parseYesNo(line)
		if perr == nil {
			return yes, nil
		}
		c.reject(ctx, prompt, line)
		c.out.printf("%s", invalid)
	}
}

// promptPayment reprompts until a valid method is chosen and returns a fresh
// strategy for it.
func (c *Controller) promptPayment(ctx context.Context) (payment.Strategy, error) {
	for {
		c.out.printf("\nSelect Payment Method:\n")
		for _, m := range payment.Methods() {
			c.out.printf("%d. %s\n", int(m), m.Label())
		}
		c.out.printf("Enter choice (1-3): ")

		line, err := c.in.readLine()
		if err != nil {
			return nil, err
		}
		m, perr := payment.ParseMethod(line)
		switch {
		case errors.Is(perr, payment.ErrUnknownMethod):
			c.reject(ctx, "payment_method", line)
			c.out.printf("Invalid choice. Please enter 1, 2, or 3.\n")
			continue
		case perr != nil:
			c.reject(ctx, "payment_method", line)
			c.out.printf("Invalid input. Please enter a number (1-3).\n")
			continue
		}

		strategy, serr := payment.NewStrategy(m)
		if serr != nil {
			return nil, serr
		}
		logctx.FromOr(ctx, c.log).Debug("payment_method_selected", observability.F("method", strategy.MethodName()))
		return strategy, nil
	}
}

func (c *Controller) reject(ctx context.Context, prompt, input string) {
	c.invalidInput.Add(1, observability.L("prompt", prompt))
	logctx.FromOr(ctx, c.log).Debug("invalid_input",
		observability.F("prompt", prompt),
		observability.F("input", input),
	)
}
