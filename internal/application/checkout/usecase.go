package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/minishop-console/internal/application"
	domcart "github.com/Zhima-Mochi/minishop-console/internal/domain/cart"
	domain "github.com/Zhima-Mochi/minishop-console/internal/domain/checkout"
	domorder "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-console/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-console/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/observability/logctx"
)

const (
	checkoutService = "checkout-service"
	useCaseCheckout = "checkout.place_order"
	spanPrefix      = "UC."
)

var (
	ErrEmptyCart          = domain.ErrEmptyCart
	ErrNoStrategySelected = payment.ErrNoStrategySelected
	ErrRepository         = errors.New("checkout: repository failure")
)

type Input struct {
	Cart *domcart.Cart
	// Strategy is the payment method chosen for this checkout only. A nil
	// strategy fails the payment step with ErrNoStrategySelected.
	Strategy payment.Strategy
}

type Result struct {
	Order   *domorder.Order
	Receipt payment.Receipt
	Status  domain.Status
}

// UseCase turns a cart into a stored order paid with the chosen strategy.
type UseCase struct {
	orders      domorder.Store
	idGenerator IDGenerator
	publisher   domoutbox.Publisher
	tracer      observability.Tracer

	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
	orderCounter observability.Counter   // checkout_orders_total{payment_method}
	amountHist   observability.Histogram // checkout_order_amount{payment_method}
}

var _ application.UseCase[Input, *Result] = (*UseCase)(nil)

func NewUseCase(
	orders domorder.Store,
	idGen IDGenerator,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *UseCase {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()

	return &UseCase{
		orders:       orders,
		idGenerator:  idGen,
		publisher:    publisher,
		tracer:       tel.Tracer(),
		log:          tel.Logger().With(observability.F("service", checkoutService)),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		orderCounter: metrics.Counter(observability.MOrdersPlaced),
		amountHist:   metrics.Histogram(observability.MOrderAmount),
	}
}

// Execute runs one checkout: Idle → SelectingPayment → Paying → Completed.
// An empty cart ends in Aborted with ErrEmptyCart. A failed payment returns
// to Idle and leaves the cart untouched.
func (uc *UseCase) Execute(ctx context.Context, cmd Input) (_ *Result, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(observability.F("use_case", useCaseCheckout))

	ctx, span := uc.tracer.Start(ctx, spanPrefix+"Checkout",
		attribute.String("use_case", useCaseCheckout),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	state := domain.Start()
	result := &Result{Status: state.Status()}

	defer func() {
		lat := time.Since(start).Seconds()
		result.Status = state.Status()

		if span != nil {
			span.SetAttributes(attribute.String("checkout.status", string(result.Status)))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		uc.reqCounter.Add(1,
			observability.L("use_case", useCaseCheckout),
			observability.L("outcome", outcome),
		)
		uc.durHistogram.Observe(lat,
			observability.L("use_case", useCaseCheckout),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("checkout_state", string(result.Status)),
			observability.F("latency_seconds", lat),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if result.Order != nil {
			fields = append(fields, observability.F("order_id", result.Order.ID))
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	empty := cmd.Cart == nil || cmd.Cart.IsEmpty()
	next, serr := state.OnStart(empty)
	if next != nil {
		state = next
	}
	if serr != nil {
		outcome, statusText = "rejected", "EMPTY_CART"
		return result, serr
	}

	selector := payment.NewSelector()
	if cmd.Strategy != nil {
		selector.Select(cmd.Strategy)
	}
	paying, terr := state.OnPaymentSelected()
	if terr != nil {
		outcome, statusText = "error", "STATE_TRANSITION_FAILED"
		return result, terr
	}
	state = paying
	span.SetAttributes(attribute.String("payment.method", selector.CurrentMethodName()))

	total := cmd.Cart.Total()
	receipt, perr := selector.Execute(ctx, total)
	if perr != nil {
		state, _ = state.OnPaymentFailed()
		outcome, statusText = "error", "PAYMENT_FAILED"
		return result, fmt.Errorf("checkout: payment: %w", perr)
	}
	result.Receipt = receipt

	orderID := uc.idGenerator.NextID()
	entity, derr := domorder.New(orderID, total, selector.CurrentMethodName(), domorder.SnapshotLines(cmd.Cart.Lines()))
	if derr != nil {
		state, _ = state.OnPaymentFailed()
		outcome, statusText = "error", "DOMAIN_CONSTRUCTION_FAILED"
		return result, fmt.Errorf("checkout: construct order: %w", derr)
	}
	if aerr := uc.orders.Append(ctx, entity); aerr != nil {
		state, _ = state.OnPaymentFailed()
		outcome, statusText = "error", "REPO_APPEND_FAILED"
		return result, fmt.Errorf("%w: %w", ErrRepository, aerr)
	}
	uc.idGenerator.Commit(orderID)

	cmd.Cart.Clear()
	state, _ = state.OnPaid()
	result.Order = entity.Clone()

	uc.orderCounter.Add(1, observability.L("payment_method", entity.PaymentMethod))
	uc.amountHist.Observe(entity.Total.InexactFloat64(), observability.L("payment_method", entity.PaymentMethod))

	if uc.publisher != nil {
		if perr := uc.publisher.Publish(ctx, domorder.NewPlacedEvent(entity)); perr != nil {
			statusText = "EVENT_PUBLISH_FAILED"
			logger.Warn("order_placed_event_publish_failed",
				observability.F("order_id", entity.ID),
				observability.F("error", perr.Error()),
			)
		}
	}

	span.AddEvent("order.placed",
		trace.WithAttributes(
			attribute.Int64("order.id", entity.ID),
			attribute.String("order.total", entity.Total.StringFixed(2)),
		),
	)

	return result, nil
}
