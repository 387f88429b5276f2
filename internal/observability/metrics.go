// Package observability defines the application's Prometheus metrics.
// HTTP-level metrics come from the fiberprometheus middleware; the metrics
// here cover domain events and the cache layer.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal counts successfully created accounts.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_signups_total",
		Help: "Total number of accounts created",
	})

	// MessagesCreatedTotal counts successfully posted messages.
	MessagesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_messages_created_total",
		Help: "Total number of messages posted",
	})

	// LikeTogglesTotal counts like toggles by resulting state.
	LikeTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_like_toggles_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"result"})

	// FollowTogglesTotal counts follow toggles by resulting state.
	FollowTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_follow_toggles_total",
		Help: "Total number of follow toggles by resulting state",
	}, []string{"result"})

	// CacheRequestsTotal counts cache-aside lookups by outcome.
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_cache_requests_total",
		Help: "Total number of cache-aside lookups by outcome",
	}, []string{"result"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
