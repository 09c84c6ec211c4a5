// Package metrics exposes relay counters for Prometheus scraping.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"page-relay/internal/domain/model"
	"page-relay/internal/domain/ports"
)

const namespace = "page_relay"

// Collector holds the relay's metrics on a private registry.
type Collector struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	changes    *prometheus.CounterVec
	deliveries *prometheus.CounterVec
}

var _ ports.Metrics = (*Collector)(nil)

// New registers the relay metrics plus Go and process collectors.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		changes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_changes_total",
			Help:      "Feed changes handled by verb and outcome.",
		}, []string{"verb", "outcome"}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discord_deliveries_total",
			Help:      "Discord webhook deliveries by result.",
		}, []string{"result"}),
	}
}

// ObserveRequest counts an inbound HTTP request.
func (c *Collector) ObserveRequest(route, method string, status int) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// ObserveChange counts a handled feed change.
func (c *Collector) ObserveChange(verb model.FeedVerb, outcome model.ChangeOutcome) {
	c.changes.WithLabelValues(verbLabel(verb), string(outcome)).Inc()
}

// ObserveDelivery counts a downstream delivery attempt.
func (c *Collector) ObserveDelivery(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	c.deliveries.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// verbLabel bounds label cardinality: unknown verbs share one series.
func verbLabel(verb model.FeedVerb) string {
	switch verb {
	case model.VerbAdd, model.VerbEdited, model.VerbRemove:
		return string(verb)
	default:
		return "other"
	}
}
