package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domcart "github.com/Zhima-Mochi/minishop-console/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-console/internal/domain/catalog"
	domain "github.com/Zhima-Mochi/minishop-console/internal/domain/checkout"
	domorder "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-console/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-console/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability/prometrics"
)

var (
	paper  = catalog.MustNewItem("1", "Paper", decimal.NewFromInt(20))
	pencil = catalog.MustNewItem("2", "Pencil", decimal.NewFromInt(10))
)

type recordingPublisher struct {
	events []domoutbox.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domoutbox.Event) error {
	p.events = append(p.events, e)
	return p.err
}

type failingStore struct{ domorder.Store }

func (failingStore) Append(context.Context, *domorder.Order) error {
	return errors.New("disk on fire")
}

type fixture struct {
	uc        *UseCase
	orders    *memory.OrderRepository
	publisher *recordingPublisher
	registry  *prometheus.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	counters, histograms := prometrics.Instruments(prometrics.New(reg, ""))
	tel := infraobs.New(nil, nil, counters, histograms)

	orders := memory.NewOrderRepository()
	pub := &recordingPublisher{}
	return &fixture{
		uc:        NewUseCase(orders, id.NewSequence(), pub, tel),
		orders:    orders,
		publisher: pub,
		registry:  reg,
	}
}

func cartWith(t *testing.T, adds ...func(*domcart.Cart) error) *domcart.Cart {
	t.Helper()
	c := domcart.New()
	for _, add := range adds {
		require.NoError(t, add(c))
	}
	return c
}

func add(item catalog.Item, qty int) func(*domcart.Cart) error {
	return func(c *domcart.Cart) error { return c.Add(item, qty) }
}

func TestExecute_PaperWithCash(t *testing.T) {
	f := newFixture(t)
	c := cartWith(t, add(paper, 3))
	require.True(t, c.Total().Equal(decimal.NewFromInt(60)))

	res, err := f.uc.Execute(context.Background(), Input{Cart: c, Strategy: payment.Cash{}})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, res.Status)
	require.NotNil(t, res.Order)
	assert.Equal(t, int64(1), res.Order.ID)
	assert.True(t, res.Order.Total.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "Cash", res.Order.PaymentMethod)
	require.Len(t, res.Order.Lines, 1)
	line := res.Order.Lines[0]
	assert.Equal(t, "1", line.ItemID)
	assert.Equal(t, "Paper", line.ItemName)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "Paid $60.00 in cash.", res.Receipt.Message)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, f.orders.Len())
}

func TestExecute_StoreGrowsByOneWithPreCheckoutTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, Input{Cart: cartWith(t, add(pencil, 1)), Strategy: payment.GCash{}})
	require.NoError(t, err)
	before := f.orders.Len()

	c := cartWith(t, add(paper, 2), add(pencil, 4))
	total := c.Total()

	res, err := f.uc.Execute(ctx, Input{Cart: c, Strategy: payment.Cash{}})
	require.NoError(t, err)
	assert.Equal(t, before+1, f.orders.Len())
	assert.True(t, res.Order.Total.Equal(total))

	orders, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.True(t, orders[len(orders)-1].Total.Equal(decimal.NewFromInt(80)))
}

func TestExecute_OrderIDsStrictlyIncreaseFromOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for want := int64(1); want <= 4; want++ {
		res, err := f.uc.Execute(ctx, Input{Cart: cartWith(t, add(paper, 1)), Strategy: payment.Card{}})
		require.NoError(t, err)
		assert.Equal(t, want, res.Order.ID)
	}
}

func TestExecute_CardMethodName(t *testing.T) {
	f := newFixture(t)

	strategy, err := payment.NewStrategy(payment.MethodCard)
	require.NoError(t, err)

	res, err := f.uc.Execute(context.Background(), Input{Cart: cartWith(t, add(paper, 1)), Strategy: strategy})
	require.NoError(t, err)
	assert.Equal(t, "Credit / Debit Card", res.Order.PaymentMethod)
}

func TestExecute_EmptyCartAborts(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Execute(context.Background(), Input{Cart: domcart.New(), Strategy: payment.Cash{}})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, domain.StatusAborted, res.Status)
	assert.Nil(t, res.Order)
	assert.Equal(t, 0, f.orders.Len())
	assert.Empty(t, f.publisher.events)

	_, err = f.uc.Execute(context.Background(), Input{Strategy: payment.Cash{}})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestExecute_NoStrategyKeepsCart(t *testing.T) {
	f := newFixture(t)
	c := cartWith(t, add(paper, 2))

	res, err := f.uc.Execute(context.Background(), Input{Cart: c})
	assert.ErrorIs(t, err, ErrNoStrategySelected)
	assert.Equal(t, domain.StatusIdle, res.Status)
	assert.Nil(t, res.Order)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, f.orders.Len())
	assert.Empty(t, f.publisher.events)
}

func TestExecute_FailedPaymentDoesNotConsumeID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, Input{Cart: cartWith(t, add(paper, 1))})
	require.Error(t, err)

	res, err := f.uc.Execute(ctx, Input{Cart: cartWith(t, add(paper, 1)), Strategy: payment.Cash{}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Order.ID)
}

func TestExecute_RepositoryFailureKeepsCart(t *testing.T) {
	uc := NewUseCase(failingStore{}, id.NewSequence(), nil, nil)
	c := cartWith(t, add(paper, 1))

	res, err := uc.Execute(context.Background(), Input{Cart: c, Strategy: payment.Cash{}})
	assert.ErrorIs(t, err, ErrRepository)
	assert.Equal(t, domain.StatusIdle, res.Status)
	assert.Equal(t, 1, c.Len())
}

type flakyStore struct {
	domorder.Store
	failNext bool
}

func (s *flakyStore) Append(ctx context.Context, o *domorder.Order) error {
	if s.failNext {
		s.failNext = false
		return errors.New("disk on fire")
	}
	return s.Store.Append(ctx, o)
}

func TestExecute_RepositoryFailureDoesNotConsumeID(t *testing.T) {
	store := &flakyStore{Store: memory.NewOrderRepository(), failNext: true}
	uc := NewUseCase(store, id.NewSequence(), nil, nil)
	c := cartWith(t, add(paper, 1))

	_, err := uc.Execute(context.Background(), Input{Cart: c, Strategy: payment.Cash{}})
	require.ErrorIs(t, err, ErrRepository)

	res, err := uc.Execute(context.Background(), Input{Cart: c, Strategy: payment.Cash{}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Order.ID)
}

func TestExecute_PublishesPlacedEvent(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Execute(context.Background(), Input{Cart: cartWith(t, add(paper, 1)), Strategy: payment.GCash{}})
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	evt, ok := f.publisher.events[0].(domorder.PlacedEvent)
	require.True(t, ok)
	assert.Equal(t, res.Order.ID, evt.OrderID)
	assert.Equal(t, "GCash", evt.PaymentMethod)
}

func TestExecute_PublishFailureStillCompletes(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("bus down")
	c := cartWith(t, add(paper, 1))

	res, err := f.uc.Execute(context.Background(), Input{Cart: c, Strategy: payment.Cash{}})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.True(t, c.IsEmpty())
}

func TestExecute_RecordsMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, Input{Cart: cartWith(t, add(paper, 1)), Strategy: payment.Cash{}})
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, Input{Cart: domcart.New(), Strategy: payment.Cash{}})
	require.Error(t, err)

	n, err := testutil.GatherAndCount(f.registry, "usecase_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n) // one series per outcome

	n, err = testutil.GatherAndCount(f.registry, "checkout_orders_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
