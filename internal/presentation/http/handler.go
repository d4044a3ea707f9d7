package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domainOrder "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
)

const (
	componentHTTPHandler = "diagnostics_http"
	headerRequestID      = "X-Request-ID"
)

type OrderReader interface {
	History(ctx context.Context) ([]*domainOrder.Order, error)
	Find(ctx context.Context, id int64) (*domainOrder.Order, error)
}

// Handler serves the read-only diagnostics surface: health, Prometheus
// metrics and the order history.
type Handler struct {
	orders   OrderReader
	gatherer prometheus.Gatherer
	log      observability.Logger
	tel      observability.Observability
}

func NewHandler(orders OrderReader, gatherer prometheus.Gatherer, tel observability.Observability) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		orders:   orders,
		gatherer: gatherer,
		log:      tel.Logger().With(observability.F("component", componentHTTPHandler)),
		tel:      tel,
	}
}

// Router wires: Recoverer → Observability (trace, request logger, metrics) → Access log → Handler.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(ObservabilityMiddleware(h.log, func(r *http.Request) string {
		return r.Header.Get(headerRequestID)
	}, h.tel))
	r.Use(h.withAccessLog)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.handleListOrders)
		r.Get("/{orderID}", h.handleGetOrder)
	})

	return r
}

// NewServer returns an http.Server for the diagnostics router.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type orderLineResponse struct {
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	OrderID       int64               `json:"order_id"`
	Total         string              `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	PlacedAt      time.Time           `json:"placed_at"`
	Lines         []orderLineResponse `json:"lines"`
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineResponse{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Quantity:  l.Quantity,
		})
	}
	return orderResponse{
		OrderID:       o.ID,
		Total:         o.Total.StringFixed(2),
		PaymentMethod: o.PaymentMethod,
		PlacedAt:      o.PlacedAt,
		Lines:         lines,
	}
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.History(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	body := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		body = append(body, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, domainOrder.ErrInvalidID)
		return
	}
	o, err := h.orders.Find(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainOrder.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domainOrder.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
