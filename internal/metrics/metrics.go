// Package metrics holds Prometheus instruments used across the service.
// All collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EndpointRoutesRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "endpoint_routes_registered",
			Help: "Number of routes recorded by the endpoint discovery pass.",
		})

	EndpointInitTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "endpoint_init_total",
			Help: "Endpoint handler initializations by handler ID and result.",
		}, []string{"handler", "result"})

	PermissionBypassTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "permission_bypass_total",
			Help: "Requests whose generic permission denial was overridden for an owned route.",
		})

	SecureTokenDeniedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secure_token_denied_total",
			Help: "Requests rejected by the shared-secret gate, by reason.",
		}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(
		EndpointRoutesRegistered,
		EndpointInitTotal,
		PermissionBypassTotal,
		SecureTokenDeniedTotal,
	)
}
