package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.Events.WithLabelValues("award", "applied").Inc()
	m.XPAwarded.Add(125)
	m.SkillChecks.WithLabelValues("success").Inc()
	m.PlayerLevel.Set(5)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "apothecary_events_total")
	assert.Contains(t, names, "apothecary_xp_awarded_total")
	assert.Contains(t, names, "apothecary_skill_checks_total")
	assert.Contains(t, names, "apothecary_player_level")
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
