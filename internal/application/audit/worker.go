package audit

import (
	"context"

	domorder "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-console/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/auditlog"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/observability/logctx"
)

const auditWorker = "audit_worker"

// Writer persists one audit entry.
type Writer interface {
	Write(ctx context.Context, e auditlog.Entry) error
}

// Worker records every placed order in the audit log. Writing is best
// effort: failures are logged and counted, never returned to the bus.
type Worker struct {
	subscriber domoutbox.Subscriber
	writer     Writer

	log    observability.Logger
	writes observability.Counter // audit_log_writes_total{outcome}
}

func New(subscriber domoutbox.Subscriber, writer Writer, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Worker{
		subscriber: subscriber,
		writer:     writer,
		log:        tel.Logger().With(observability.F("component", auditWorker)),
		writes:     tel.Metrics().Counter(observability.MAuditWrites),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil || w.writer == nil {
		return
	}
	w.subscriber.Subscribe(domorder.PlacedEvent{}.EventName(), w.handleOrderPlaced)
}

func (w *Worker) handleOrderPlaced(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domorder.PlacedEvent)
	if !ok {
		return nil
	}

	logger := logctx.FromOr(ctx, w.log).With(
		observability.F("event", e.EventName()),
		observability.F("order_id", evt.OrderID),
	)

	err := w.writer.Write(ctx, auditlog.Entry{
		OrderID:       evt.OrderID,
		PaymentMethod: evt.PaymentMethod,
	})
	if err != nil {
		w.writes.Add(1, observability.L("outcome", "error"))
		logger.Warn("audit_write_failed",
			observability.F("error", err.Error()),
		)
		return nil
	}

	w.writes.Add(1, observability.L("outcome", "success"))
	logger.Debug("audit_written",
		observability.F("payment_method", evt.PaymentMethod),
	)
	return nil
}
