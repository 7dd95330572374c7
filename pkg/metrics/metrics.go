package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HistogramBuckets are millisecond buckets sized for API calls and PDF renders.
var HistogramBuckets = []float64{
	5, 10, 25, 50, 75, 100, 150, 200, 300, 500,
	750, 1000, 1500, 2000, 3000, 5000, 10000, 30000,
}

// Metric is a definition for the name, description, type and labels of a
// collector. MetricCollector is filled in once the definition is registered.
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric builds the prometheus.Collector described by m.
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	switch m.Type {
	case "counter_vec":
		return prometheus.NewCounterVec(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "counter":
		return prometheus.NewCounter(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	case "gauge_vec":
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "histogram_vec":
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description, Buckets: HistogramBuckets}, m.Args)
	case "summary_vec":
		return prometheus.NewSummaryVec(prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	}
	return nil
}

var MetricsBusinessProcess = &Metric{
	ID:          "bpDur",
	Name:        "bp_dur_ms",
	Description: "business process latency in milliseconds",
	Type:        "histogram_vec",
	Args:        []string{"type", "result"},
}

var MetricsInvoiceDispatch = &Metric{
	ID:          "invoiceSent",
	Name:        "invoice_dispatch_total",
	Description: "invoice emails attempted, partitioned by result",
	Type:        "counter_vec",
	Args:        []string{"result"},
}

var MetricsSubscriptionChange = &Metric{
	ID:          "subChange",
	Name:        "subscription_change_total",
	Description: "subscription writes, partitioned by reason",
	Type:        "counter_vec",
	Args:        []string{"reason"},
}

// Business holds the collectors recorded by services. A nil *Business is a
// valid no-op recorder, which keeps tests free of registry setup.
type Business struct {
	process  *prometheus.HistogramVec
	dispatch *prometheus.CounterVec
	changes  *prometheus.CounterVec
}

// NewBusiness registers the business collectors on reg.
func NewBusiness(reg prometheus.Registerer, subsystem string) (*Business, error) {
	b := &Business{
		process:  NewMetric(MetricsBusinessProcess, subsystem).(*prometheus.HistogramVec),
		dispatch: NewMetric(MetricsInvoiceDispatch, subsystem).(*prometheus.CounterVec),
		changes:  NewMetric(MetricsSubscriptionChange, subsystem).(*prometheus.CounterVec),
	}
	for _, c := range []prometheus.Collector{b.process, b.dispatch, b.changes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// ObserveProcess records how long a named business step took.
func (b *Business) ObserveProcess(kind string, start time.Time, err error) {
	if b == nil {
		return
	}
	b.process.WithLabelValues(kind, result(err)).Observe(MillisecondsSince(start))
}

func (b *Business) InvoiceDispatched(err error) {
	if b == nil {
		return
	}
	b.dispatch.WithLabelValues(result(err)).Inc()
}

func (b *Business) SubscriptionChanged(reason string) {
	if b == nil {
		return
	}
	b.changes.WithLabelValues(reason).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// MillisecondsSince returns the elapsed time since start in fractional milliseconds.
func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

const (
	RefererKey = "X-Referer"
)
