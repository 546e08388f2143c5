// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LeadsCapturedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Cumulative number of leads persisted, by source type.",
		}, []string{"source"})

	CaptureRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capture_rejected_total",
			Help: "Cumulative number of capture requests rejected, by reason.",
		}, []string{"reason"})

	WidgetConfigLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_config_lookups_total",
			Help: "Widget configuration reads, by result (hit, inactive, error).",
		}, []string{"result"})

	DomainRewritesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_rewrites_total",
			Help: "Custom-domain requests rewritten to a landing page.",
		})

	DomainRedirectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_redirects_total",
			Help: "Custom-domain requests redirected to the page root.",
		})

	DomainMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_misses_total",
			Help: "Custom-domain requests with no matching landing page.",
		})

	CachedDomains = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cached_domains",
			Help: "Number of custom domains currently held in the route cache.",
		})

	DomainLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_load_total",
			Help: "Cumulative number of custom domains loaded into the cache.",
		})

	DomainLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_load_errors_total",
			Help: "Cumulative number of custom-domain load errors.",
		})

	DomainEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_evict_total",
			Help: "Cumulative number of domains evicted from the route cache.",
		})
)

func init() {
	prometheus.MustRegister(
		LeadsCapturedTotal,
		CaptureRejectedTotal,
		WidgetConfigLookupsTotal,
		DomainRewritesTotal,
		DomainRedirectsTotal,
		DomainMissesTotal,
		CachedDomains,
		DomainLoadTotal,
		DomainLoadErrorsTotal,
		DomainEvictTotal,
	)
}
