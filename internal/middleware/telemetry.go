package middleware

import (
	"math"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type statusRecorder struct {
	response http.ResponseWriter
	status   int
	bytes    int
}

func (r *statusRecorder) Header() http.Header {
	return r.response.Header()
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.response.WriteHeader(status)
}

func (r *statusRecorder) Write(data []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.response.Write(data)
	r.bytes += n
	return n, err
}

// rollingWindow keeps the most recent latency samples per route so the
// request log can carry p50/p95 without an external metrics stack.
type rollingWindow struct {
	samples []int64
	index   int
	full    bool
}

func (w *rollingWindow) add(value int64, capacity int) {
	if len(w.samples) < capacity && !w.full {
		w.samples = append(w.samples, value)
		return
	}
	w.full = true
	w.samples[w.index] = value
	w.index = (w.index + 1) % capacity
}

type latencyTracker struct {
	mu       sync.Mutex
	capacity int
	routes   map[string]*rollingWindow
}

func newLatencyTracker(capacity int) *latencyTracker {
	return &latencyTracker{capacity: capacity, routes: make(map[string]*rollingWindow)}
}

func (t *latencyTracker) record(key string, value int64) (p50, p95 int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	win, ok := t.routes[key]
	if !ok {
		win = &rollingWindow{}
		t.routes[key] = win
	}
	win.add(value, t.capacity)

	values := make([]int64, len(win.samples))
	copy(values, win.samples)
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return percentile(values, 0.5), percentile(values, 0.95)
}

func percentile(values []int64, p float64) int64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(values)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}

var requestLatency = newLatencyTracker(200)

// Telemetry logs one structured line per request with route-level latency
// percentiles.
func Telemetry(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{response: w}

			next.ServeHTTP(recorder, r)

			status := recorder.status
			if status == 0 {
				status = http.StatusOK
			}
			if logger == nil {
				return
			}

			route := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				route = rc.RoutePattern()
			}
			metricKey := r.Method + " " + route
			if route == "" {
				metricKey = r.Method + " " + r.URL.Path
			}

			duration := time.Since(start)
			p50, p95 := requestLatency.record(metricKey, duration.Milliseconds())
			logger.Info(
				"http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("routePattern", route),
				zap.String("requestId", FromContext(r.Context())),
				zap.Int("status", status),
				zap.Int("bytes", recorder.bytes),
				zap.Int64("duration_ms", duration.Milliseconds()),
				zap.Int64("p50_ms", p50),
				zap.Int64("p95_ms", p95),
				zap.Bool("error", status >= 500),
				zap.Bool("clientError", status >= 400 && status < 500),
			)
		})
	}
}
