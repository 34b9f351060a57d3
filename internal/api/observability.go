package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/younwookim/platfight/internal/application/match"
	"github.com/younwookim/platfight/internal/domain/entity"
)

// Metrics with bounded cardinality (no per-character labels)
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "platfight_tick_duration_seconds",
		Help:    "Time spent in one simulation tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	jumpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platfight_jumps_total",
		Help: "Jumps performed by all characters",
	}, []string{"kind"}) // Bounded: "jump", "walljump"

	fastfallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platfight_fastfalls_total",
		Help: "Fastfalls started by all characters",
	})

	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platfight_hits_total",
		Help: "Attack hits credited",
	})

	damageTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platfight_damage_total",
		Help: "Damage percentage dealt",
	})

	tuningEditsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platfight_tuning_edits_total",
		Help: "Accepted tunable edits",
	}, []string{"source"}) // Bounded: "api", "reload"

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platfight_connection_rejected_total",
		Help: "Requests rejected by rate limiter or origin check",
	}, []string{"reason"}) // Bounded: "rate_limit", "origin", "ws_limit"

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "platfight_websocket_connections_active",
		Help: "Currently active snapshot feed connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platfight_websocket_messages_total",
		Help: "Snapshot feed messages sent",
	})
)

// RecordTick records tick timing
func RecordTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

// RecordJump counts a jump
func RecordJump(walljump bool) {
	kind := "jump"
	if walljump {
		kind = "walljump"
	}
	jumpsTotal.WithLabelValues(kind).Inc()
}

// RecordFastfall counts a fastfall start
func RecordFastfall() {
	fastfallsTotal.Inc()
}

// RecordHit counts a credited hit and its damage
func RecordHit(damage float64) {
	hitsTotal.Inc()
	if damage > 0 {
		damageTotal.Add(damage)
	}
}

// RecordTuningEdit counts an accepted edit.
// source must be one of: "api", "reload"
func RecordTuningEdit(source string) {
	tuningEditsTotal.WithLabelValues(source).Inc()
}

// RecordConnectionRejected increments the rejection counter
// reason must be one of: "rate_limit", "origin", "ws_limit"
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// UpdateWSConnections updates the feed connection gauge
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// IncrementWSMessages increments the feed message counter
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}

// MatchHooks returns match callbacks that feed the metrics above
func MatchHooks() match.Hooks {
	return match.Hooks{
		OnTick: RecordTick,
		OnJump: func(_ entity.EntityID, walljump bool) {
			RecordJump(walljump)
		},
		OnFastfall: func(entity.EntityID) {
			RecordFastfall()
		},
		OnHit: func(_, _ entity.EntityID, damage float64) {
			RecordHit(damage)
		},
	}
}
