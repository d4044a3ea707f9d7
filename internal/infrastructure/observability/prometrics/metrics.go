package prometrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Zhima-Mochi/minishop-console/internal/observability"
)

// Registry creates Prometheus-backed instruments behind the observability ports.
type Registry interface {
	Counter(name observability.MetricKey, help string, labelKeys ...string) observability.Counter
	Histogram(name observability.MetricKey, help string, buckets []float64, labelKeys ...string) observability.Histogram
}

type registry struct {
	mu         sync.Mutex
	reg        prometheus.Registerer
	namespace  string
	counters   map[observability.MetricKey]*prometheus.CounterVec
	histograms map[observability.MetricKey]*prometheus.HistogramVec
}

// New returns a Registry that registers instruments on reg, or on the default
// registerer when reg is nil.
func New(reg prometheus.Registerer, namespace string) Registry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &registry{
		reg:        reg,
		namespace:  namespace,
		counters:   make(map[observability.MetricKey]*prometheus.CounterVec),
		histograms: make(map[observability.MetricKey]*prometheus.HistogramVec),
	}
}

type counter struct{ v *prometheus.CounterVec }

func (c *counter) Add(d float64, labels ...observability.Label) {
	c.v.With(labelMap(labels)).Add(d)
}

type histogram struct{ v *prometheus.HistogramVec }

func (h *histogram) Observe(v float64, labels ...observability.Label) {
	h.v.With(labelMap(labels)).Observe(v)
}

func labelMap(ls []observability.Label) prometheus.Labels {
	m := make(prometheus.Labels, len(ls))
	for _, l := range ls {
		m[l.Key] = l.Value
	}
	return m
}

func (r *registry) Counter(name observability.MetricKey, help string, labelKeys ...string) observability.Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	// ensure only registered once
	if v, ok := r.counters[name]; ok {
		return &counter{v: v}
	}
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace, Name: string(name), Help: help,
	}, labelKeys)
	r.reg.MustRegister(cv)
	r.counters[name] = cv
	return &counter{v: cv}
}

func (r *registry) Histogram(name observability.MetricKey, help string, buckets []float64, labelKeys ...string) observability.Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.histograms[name]; ok {
		return &histogram{v: v}
	}
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace, Name: string(name), Help: help, Buckets: buckets,
	}, labelKeys)
	r.reg.MustRegister(hv)
	r.histograms[name] = hv
	return &histogram{v: hv}
}

// Instruments registers every storefront metric and returns them keyed for
// the observability provider.
func Instruments(r Registry) (map[observability.MetricKey]observability.Counter, map[observability.MetricKey]observability.Histogram) {
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: r.Counter(observability.MUsecaseRequests,
			"Total number of use case invocations.", "use_case", "outcome"),
		observability.MOrdersPlaced: r.Counter(observability.MOrdersPlaced,
			"Orders placed, by payment method.", "payment_method"),
		observability.MAuditWrites: r.Counter(observability.MAuditWrites,
			"Audit log write attempts.", "outcome"),
		observability.MInvalidInput: r.Counter(observability.MInvalidInput,
			"Console inputs rejected and reprompted.", "prompt"),
		observability.MHTTPRequests: r.Counter(observability.MHTTPRequests,
			"Diagnostics HTTP requests.", "method", "route", "status"),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: r.Histogram(observability.MUsecaseDuration,
			"Duration of use case execution in seconds.", prometheus.DefBuckets, "use_case"),
		observability.MOrderAmount: r.Histogram(observability.MOrderAmount,
			"Order totals.", []float64{10, 25, 50, 100, 250, 500, 1000}, "payment_method"),
		observability.MHTTPRequestDuration: r.Histogram(observability.MHTTPRequestDuration,
			"Diagnostics HTTP request duration in seconds.", prometheus.DefBuckets, "method", "route"),
	}
	return counters, histograms
}
