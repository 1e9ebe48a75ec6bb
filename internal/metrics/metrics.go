package metrics

import (
	"net/http"
	"sync"
	"time"
)

// Package metrics provides a minimal instrumentation interface with a no-op
// default and optional Prometheus-backed implementation enabled via config.

// Recorder defines the metrics surface used across the codebase.
type Recorder interface {
	ObserveSolve(algorithm, outcome string, seconds float64, explored int)
	IncToolTotal(tool string, success bool)
	ObserveToolSeconds(tool string, success bool, seconds float64)
	ObserveHTTPRequest(route, method string, status int, seconds float64)
	IncRateLimited(route string)
}

// noopRecorder implements Recorder with no-ops.
type noopRecorder struct{}

func (n *noopRecorder) ObserveSolve(string, string, float64, int)      {}
func (n *noopRecorder) IncToolTotal(string, bool)                       {}
func (n *noopRecorder) ObserveToolSeconds(string, bool, float64)        {}
func (n *noopRecorder) ObserveHTTPRequest(string, string, int, float64) {}
func (n *noopRecorder) IncRateLimited(string)                           {}

var (
	recMu    sync.RWMutex
	recorder Recorder = &noopRecorder{}
	handler  http.Handler
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	if r == nil {
		r = &noopRecorder{}
	}
	recorder = r
}

// TimeTool is a helper to time tool handler operations.
func TimeTool(tool string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		dur := time.Since(start).Seconds()
		Default().IncToolTotal(tool, success)
		Default().ObserveToolSeconds(tool, success, dur)
	}
}

// Handler serves the exposition format of the installed Prometheus registry,
// or 404 when Prometheus is not enabled.
func Handler() http.Handler {
	recMu.RLock()
	defer recMu.RUnlock()
	if handler == nil {
		return http.NotFoundHandler()
	}
	return handler
}

// Enabled reports whether a Prometheus registry is installed.
func Enabled() bool {
	recMu.RLock()
	defer recMu.RUnlock()
	return handler != nil
}

// Setup enables the Prometheus recorder when enabled is true. A non-empty
// addr also starts a small side server with /metrics and /healthz, which the
// MCP transports use since they do not run the HTTP API.
func Setup(enabled bool, addr string) error {
	if !enabled {
		return nil
	}
	return enablePrometheus(addr)
}

// enablePrometheus is provided by build-tagged files.
