package httppresentation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appOrder "github.com/Zhima-Mochi/minishop-console/internal/application/order"
	domainOrder "github.com/Zhima-Mochi/minishop-console/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability/prometrics"
)

func newTestRouter(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()

	repo := memory.NewOrderRepository()
	o, err := domainOrder.New(1, decimal.NewFromInt(60), "Cash", []domainOrder.Line{
		{ItemID: "1", ItemName: "Paper", UnitPrice: decimal.NewFromInt(20), Quantity: 3},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Append(context.Background(), o))

	reg := prometheus.NewRegistry()
	counters, histograms := prometrics.Instruments(prometrics.New(reg, ""))
	tel := infraobs.New(nil, nil, counters, histograms)

	h := NewHandler(appOrder.NewService(repo, nil), reg, tel)
	return h.Router(), reg
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
}

func TestRequestIDIsEchoed(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(headerRequestID))
}

func TestListOrders(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/orders/")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, int64(1), body[0].OrderID)
	assert.Equal(t, "60.00", body[0].Total)
	assert.Equal(t, "Cash", body[0].PaymentMethod)
	require.Len(t, body[0].Lines, 1)
	assert.Equal(t, "20.00", body[0].Lines[0].UnitPrice)
}

func TestGetOrder(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/orders/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Paper", body.Lines[0].ItemName)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/orders/99").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/orders/abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/orders/0").Code)
}

func TestMetricsEndpointExposesHTTPCounters(t *testing.T) {
	h, reg := newTestRouter(t)

	get(t, h, "/healthz")
	get(t, h, "/orders/1")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	n, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	// one series per route pattern: /healthz, /orders/{orderID}, /metrics
	assert.Equal(t, 3, n)
}
