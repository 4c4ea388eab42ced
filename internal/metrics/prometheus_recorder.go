package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	treeNodes     prom.Gauge
	treePages     prom.Gauge
	lookups       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "build_duration_seconds",
			Help:      "Duration of navigation tree builds, config load included",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "build_outcomes_total",
			Help:      "Navigation builds by outcome",
		}, []string{"outcome"}),
		treeNodes: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "tree_nodes",
			Help:      "Nodes in the current navigation tree",
		}),
		treePages: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "tree_pages",
			Help:      "Routed pages in the current navigation tree",
		}),
		lookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "lookups_total",
			Help:      "Route lookups by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.treeNodes, pr.treePages, pr.lookups)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetTreeSize(nodes, pages int) {
	p.treeNodes.Set(float64(nodes))
	p.treePages.Set(float64(pages))
}

func (p *PrometheusRecorder) IncLookup(result string) {
	p.lookups.WithLabelValues(result).Inc()
}

// HTTPHandler serves the metrics gathered by g.
func HTTPHandler(g prom.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
