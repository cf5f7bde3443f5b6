package esrelay

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Client operations as they appear in metric labels and log records.
const (
	opPing        = "ping"
	opCreateIndex = "create_index"
	opAddDocument = "add_document"
	opGetDocument = "get_document"
)

// callMetrics counts embedded relay calls and times them.
type callMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newCallMetrics(reg prometheus.Registerer) (*callMetrics, error) {
	m := &callMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esrelay",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Embedded relay calls (ping, create_index, add_document, get_document) by status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "esrelay",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "Embedded relay call latency including the Elasticsearch round trip.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
	if err := registerShared(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerShared(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerShared registers c, or adopts the collector another Client already
// registered under the same name so several clients can share one registry.
func registerShared[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("esrelay: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("esrelay: metric already registered as %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer records every client call. A nil observer, a nil logger and nil
// metrics are all valid and disable the respective output.
type observer struct {
	logger  *slog.Logger
	metrics *callMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newCallMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// observe is deferred by each Client method with the call's final error.
// Only returned errors count as failures: an unreachable cluster is reported
// in the relay message and counted as ok here.
func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
	}

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("esrelay call failed", "operation", op, "elapsed", elapsed, "error", err)
		return
	}
	o.logger.Debug("esrelay call done", "operation", op, "elapsed", elapsed)
}
