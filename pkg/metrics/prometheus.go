package metrics

/* adapted from https://github.com/zsais/go-gin-prometheus
edits:
- log through the zap sugared logger
- registerer is injectable
- metrics listener is owned by the caller
*/

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var reqCnt = &Metric{
	ID:          "reqCnt",
	Name:        "req_total",
	Description: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	Type:        "counter_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var reqDur = &Metric{
	ID:          "reqDur",
	Name:        "req_dur_ms",
	Description: "The HTTP request latencies in milliseconds.",
	Type:        "histogram_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

var resSz = &Metric{
	ID:          "resSz",
	Name:        "resp_sz_bytes",
	Description: "The HTTP response sizes in bytes.",
	Type:        "summary_vec",
	Args:        []string{"code", "method", "url", "ref"},
}

const defaultMetricPath = "/metrics"

type Logger interface {
	Errorf(template string, args ...interface{})
}

// RequestCounterURLLabelMappingFn controls the cardinality of the "url" label.
type RequestCounterURLLabelMappingFn func(c *gin.Context) string

// Prometheus holds the HTTP collectors and the registry they live in.
type Prometheus struct {
	reqCnt   *prometheus.CounterVec
	reqDur   *prometheus.HistogramVec
	resSz    *prometheus.SummaryVec
	gatherer prometheus.Gatherer

	MetricsPath             string
	ReqCntURLLabelMappingFn RequestCounterURLLabelMappingFn
}

type NewPrometheusOptions struct {
	Subsystem               string
	MetricsPath             string
	ReqCntURLLabelMappingFn RequestCounterURLLabelMappingFn
	// Registry defaults to the global prometheus registry.
	Registry *prometheus.Registry
	Logger   Logger
}

// NewPrometheus registers the standard HTTP collectors.
func NewPrometheus(options NewPrometheusOptions) *Prometheus {
	p := &Prometheus{
		MetricsPath:             options.MetricsPath,
		ReqCntURLLabelMappingFn: options.ReqCntURLLabelMappingFn,
	}
	if p.MetricsPath == "" {
		p.MetricsPath = defaultMetricPath
	}
	if p.ReqCntURLLabelMappingFn == nil {
		p.ReqCntURLLabelMappingFn = RouteTemplate
	}

	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	p.gatherer = prometheus.DefaultGatherer
	if options.Registry != nil {
		reg, p.gatherer = options.Registry, options.Registry
	}

	p.reqCnt = NewMetric(reqCnt, options.Subsystem).(*prometheus.CounterVec)
	p.reqDur = NewMetric(reqDur, options.Subsystem).(*prometheus.HistogramVec)
	p.resSz = NewMetric(resSz, options.Subsystem).(*prometheus.SummaryVec)
	for _, m := range []prometheus.Collector{p.reqCnt, p.reqDur, p.resSz} {
		if err := reg.Register(m); err != nil && options.Logger != nil {
			options.Logger.Errorf("metric could not be registered in Prometheus, err=%v", err)
		}
	}
	return p
}

// RouteTemplate labels a request by its gin route so path parameters such as
// invoice tokens do not explode label cardinality.
func RouteTemplate(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return "unmatched"
}

// Handler exposes the registry in the text exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

// HandlerFunc is the gin middleware recording request metrics.
func (p *Prometheus) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == p.MetricsPath {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		url := p.ReqCntURLLabelMappingFn(c)
		ref := c.Request.Header.Get(RefererKey)

		p.reqDur.WithLabelValues(status, c.Request.Method, url, ref).Observe(MillisecondsSince(start))
		p.reqCnt.WithLabelValues(status, c.Request.Method, url, ref).Inc()
		p.resSz.WithLabelValues(status, c.Request.Method, url, ref).Observe(float64(c.Writer.Size()))
	}
}
