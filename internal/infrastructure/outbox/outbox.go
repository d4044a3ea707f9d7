package outbox

import (
	"context"
	"runtime/debug"
	"sync"

	domoutbox "github.com/Zhima-Mochi/minishop-console/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/observability/logctx"
)

const componentOutbox = "outbox"

// Bus is an in-process event bus. Publish runs every subscribed handler on the
// caller's goroutine, in subscription order, before returning. Handler errors
// and panics are logged and never reach the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]domoutbox.Handler
	log  observability.Logger
}

func NewBus(logger observability.Logger) *Bus {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Bus{
		subs: make(map[string][]domoutbox.Handler),
		log:  logger.With(observability.F("component", componentOutbox)),
	}
}

func (b *Bus) Subscribe(eventName string, h domoutbox.Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Publish(ctx context.Context, e domoutbox.Event) error {
	if e == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		logctx.FromOr(ctx, b.log).Warn("event_publish_aborted",
			observability.F("event", e.EventName()),
			observability.F("error", err.Error()),
		)
		return err
	}

	name := e.EventName()

	b.mu.RLock()
	handlers := append([]domoutbox.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	logger := logctx.FromOr(ctx, b.log).With(observability.F("event", name))
	if len(handlers) == 0 {
		logger.Debug("event_dropped_no_subscriber")
		return nil
	}

	for _, h := range handlers {
		b.dispatch(ctx, logger, h, e)
	}

	logger.Debug("event_fanned_out",
		observability.F("handlers", len(handlers)),
	)
	return nil
}

func (b *Bus) dispatch(ctx context.Context, logger observability.Logger, h domoutbox.Handler, e domoutbox.Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event_handler_panic",
				observability.F("panic", r),
				observability.F("stack", string(debug.Stack())),
			)
		}
	}()

	if err := h(logctx.With(ctx, logger), e); err != nil {
		logger.Warn("event_handler_error",
			observability.F("error", err.Error()),
		)
	}
}
