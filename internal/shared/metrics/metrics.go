package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	httpRequests  = newCounterVec("method", "route", "status")
	llmCalls      = newCounterVec("provider", "operation", "outcome")
	normalizeRuns = newCounterVec("shape", "outcome")
	codeRuns      = newCounterVec("runner", "outcome")
	rateLimited   = newCounterVec("group")

	httpDuration = newHistogram([]float64{5, 25, 100, 250, 500, 1000, 2500, 5000, 10000})
	llmDuration  = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// ObserveRequest records a finished HTTP request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequests.Inc(method, route, strconv.Itoa(status))
	httpDuration.Observe(float64(d.Microseconds()) / 1000.0)
}

// ObserveLLMCall records one provider round trip. outcome is "ok" or "error".
func ObserveLLMCall(provider, operation, outcome string, d time.Duration) {
	llmCalls.Inc(provider, operation, outcome)
	llmDuration.Observe(float64(d.Microseconds()) / 1000.0)
}

// IncNormalize records how a raw AI response was normalized.
func IncNormalize(shape, outcome string) {
	normalizeRuns.Inc(shape, outcome)
}

// IncCodeRun records a code execution by runner ("judge0" or "simulated").
func IncCodeRun(runner, outcome string) {
	codeRuns.Inc(runner, outcome)
}

// IncRateLimited records a rejected request.
func IncRateLimited(group string) {
	rateLimited.Inc(group)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "http_requests_total", "HTTP requests by route and status", httpRequests)
	writeHistogram(&buf, "http_request_duration_ms", "HTTP request duration in milliseconds", httpDuration.Snapshot())
	writeCounterVec(&buf, "llm_calls_total", "AI provider calls", llmCalls)
	writeHistogram(&buf, "llm_call_duration_ms", "AI provider call duration in milliseconds", llmDuration.Snapshot())
	writeCounterVec(&buf, "normalize_results_total", "AI response normalization outcomes", normalizeRuns)
	writeCounterVec(&buf, "code_runs_total", "Code executions by runner", codeRuns)
	writeCounterVec(&buf, "rate_limited_total", "Requests rejected by the rate limiter", rateLimited)
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	labels []string
	values map[string]uint64
}

func newCounterVec(labels ...string) *counterVec {
	return &counterVec{labels: labels, values: make(map[string]uint64)}
}

func (v *counterVec) Inc(values ...string) {
	parts := make([]string, len(v.labels))
	for i, name := range v.labels {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts[i] = fmt.Sprintf("%s=%q", name, val)
	}
	key := strings.Join(parts, ",")
	v.mu.Lock()
	v.values[key]++
	v.mu.Unlock()
}

func (v *counterVec) snapshot() ([]string, map[string]uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]uint64, len(v.values))
	keys := make([]string, 0, len(v.values))
	for k, n := range v.values {
		out[k] = n
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value in the first bucket it fits; rendering makes counts cumulative.
func (h *histogram) Observe(value float64) {
	if value < 0 {
		value = 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounterVec(buf *bytes.Buffer, name, help string, v *counterVec) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys, values := v.snapshot()
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
