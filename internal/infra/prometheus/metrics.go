package prometheus

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalMu      sync.RWMutex
	globalMetrics *Component
)

func registerGlobal(c *Component) {
	globalMu.Lock()
	globalMetrics = c
	globalMu.Unlock()
}

// C returns the started metrics component, or nil when metrics are off.
func C() *Component {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalMetrics
}

// OpMetrics counts operations by outcome and records their latency.
// A nil *OpMetrics drops every observation.
type OpMetrics struct {
	Total    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewOpMetrics registers <prefix>_ops_total and <prefix>_op_duration_seconds on
// the started component. It returns nil when metrics are off.
func NewOpMetrics(prefix, what string) *OpMetrics {
	c := C()
	if c == nil {
		return nil
	}
	return &OpMetrics{
		Total:    c.NewCounter(prefix+"_ops_total", what+" operations by outcome.", []string{"op", "result"}),
		Duration: c.NewHistogram(prefix+"_op_duration_seconds", what+" operation latency.", []string{"op"}, prometheus.DefBuckets),
	}
}

func (m *OpMetrics) Observe(op, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Total.WithLabelValues(op, result).Inc()
	m.Duration.WithLabelValues(op).Observe(elapsed.Seconds())
}
