//go:build !noprom

package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pathsearch"

type promRecorder struct {
	solveTotal    *prom.CounterVec
	solveSeconds  *prom.HistogramVec
	solveExplored *prom.HistogramVec
	toolTotal     *prom.CounterVec
	toolSeconds   *prom.HistogramVec
	httpTotal     *prom.CounterVec
	httpSeconds   *prom.HistogramVec
	rateLimited   *prom.CounterVec
}

func (p *promRecorder) ObserveSolve(algorithm, outcome string, seconds float64, explored int) {
	p.solveTotal.WithLabelValues(algorithm, outcome).Inc()
	p.solveSeconds.WithLabelValues(algorithm, outcome).Observe(seconds)
	p.solveExplored.WithLabelValues(algorithm).Observe(float64(explored))
}

func (p *promRecorder) IncToolTotal(tool string, success bool) {
	p.toolTotal.WithLabelValues(tool, fmt.Sprintf("%t", success)).Inc()
}

func (p *promRecorder) ObserveToolSeconds(tool string, success bool, seconds float64) {
	p.toolSeconds.WithLabelValues(tool, fmt.Sprintf("%t", success)).Observe(seconds)
}

func (p *promRecorder) ObserveHTTPRequest(route, method string, status int, seconds float64) {
	p.httpTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.httpSeconds.WithLabelValues(route, method).Observe(seconds)
}

func (p *promRecorder) IncRateLimited(route string) {
	p.rateLimited.WithLabelValues(route).Inc()
}

func newPromRecorder() *promRecorder {
	return &promRecorder{
		solveTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Total number of solve calls",
		}, []string{"algorithm", "outcome"}),
		solveSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_seconds",
			Help:      "Solve duration in seconds",
			Buckets:   prom.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"algorithm", "outcome"}),
		solveExplored: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_nodes_explored",
			Help:      "Distinct states explored per solve",
			Buckets:   prom.ExponentialBuckets(1, 2, 6),
		}, []string{"algorithm"}),
		toolTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of tool handler calls",
		}, []string{"tool", "success"}),
		toolSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_seconds",
			Help:      "Tool handler duration in seconds",
			Buckets:   prom.DefBuckets,
		}, []string{"tool", "success"}),
		httpTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		httpSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "method"}),
		rateLimited: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter",
		}, []string{"route"}),
	}
}

func enablePrometheus(addr string) error {
	registry := prom.NewRegistry()
	p := newPromRecorder()
	registry.MustRegister(
		p.solveTotal, p.solveSeconds, p.solveExplored,
		p.toolTotal, p.toolSeconds,
		p.httpTotal, p.httpSeconds, p.rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	recMu.Lock()
	recorder = p
	handler = h
	recMu.Unlock()

	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() { _ = http.ListenAndServe(addr, mux) }()
	return nil
}
