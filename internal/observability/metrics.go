package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "apothecary"

// Metrics counts engine activity driven by the game loop.
type Metrics struct {
	Events      *prometheus.CounterVec
	XPAwarded   prometheus.Counter
	LevelUps    prometheus.Counter
	SkillChecks *prometheus.CounterVec
	PlayerLevel prometheus.Gauge
}

// NewMetrics registers the engine metrics on reg.
//
// Precondition: reg must be non-nil and must not already hold these metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Game-loop events applied to a session, by type and result.",
		}, []string{"type", "result"}),
		XPAwarded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xp_awarded_total",
			Help:      "XP credited after profession modifiers.",
		}),
		LevelUps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_ups_total",
			Help:      "XP awards that raised the player level.",
		}),
		SkillChecks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skill_checks_total",
			Help:      "Skill checks rolled, by outcome.",
		}, []string{"outcome"}),
		PlayerLevel: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "player_level",
			Help:      "Player level after the last applied event.",
		}),
	}
}
