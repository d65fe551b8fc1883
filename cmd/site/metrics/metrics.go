package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strapi_upstream_requests_total",
		Help: "Tracks upstream CMS requests by method and status code.",
	}, []string{"method", "status"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "strapi_upstream_request_duration_seconds",
		Help:    "Tracks the latencies of upstream CMS requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	pageRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "site_http_requests_total",
		Help: "Tracks inbound site requests by route and status code.",
	}, []string{"route", "status"})
)

// Registry returns a registry holding the runtime collectors and the site metrics.
func Registry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		upstreamRequests,
		upstreamDuration,
		pageRequests,
	)
	return registry
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream call. status 0 means a transport failure.
func ObserveUpstream(method string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(method, label).Inc()
	upstreamDuration.WithLabelValues(method).Observe(d.Seconds())
}

func ObservePage(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	pageRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
