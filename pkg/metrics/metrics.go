package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OutboundRequests counts backend requests by service, method and final status ("network" when no response).
	OutboundRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_outbound_requests_total",
			Help: "Total number of requests sent to backend services",
		},
		[]string{"service", "method", "status"},
	)

	// OutboundLatency measures backend round-trip latency per attempt.
	OutboundLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assetdesk_outbound_latency_seconds",
			Help:    "Backend request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)

	// TokenRefreshes records refresh attempts by result (success|failure|reused).
	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_token_refreshes_total",
			Help: "Total number of access token refresh attempts",
		},
		[]string{"result"},
	)

	// QueryCache counts query cache lookups by result (hit|miss|shared).
	QueryCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_query_cache_lookups_total",
			Help: "Total number of query cache lookups",
		},
		[]string{"result"},
	)

	// CacheInvalidations counts cached queries dropped by tag invalidation, labelled by tag type.
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_query_cache_invalidations_total",
			Help: "Total number of cached queries invalidated",
		},
		[]string{"tag"},
	)

	// PermissionChecks counts UI affordance checks and their outcome (allow|deny).
	PermissionChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_permission_checks_total",
			Help: "Total number of permission checks",
		},
		[]string{"result"},
	)

	// RouteDecisions counts route guard outcomes (allow|login|home|loading).
	RouteDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_route_decisions_total",
			Help: "Total number of route guard decisions",
		},
		[]string{"layer", "action"},
	)

	// EdgeLatency measures edge server request latencies.
	EdgeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assetdesk_edge_latency_seconds",
			Help:    "Edge server request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
