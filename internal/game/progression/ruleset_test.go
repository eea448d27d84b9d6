package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/config"
	"github.com/cory-johannsen/apothecary/internal/game/profession"
	"github.com/cory-johannsen/apothecary/internal/game/progression"
)

func TestRuleset_ExposesConfiguredRules(t *testing.T) {
	rules := newRules(t, fixedRoll(10))
	assert.Equal(t, len(profession.IDs()), rules.Catalog().Len())
	assert.Equal(t, 5, rules.ChoiceLevel())
	assert.Equal(t, 99, rules.LevelCap())
	assert.Equal(t, 10, rules.QuestCooldownTurns())
	assert.True(t, rules.Toxic("toxicology"))
	assert.False(t, rules.Toxic("herbalism"))
}

func TestNewRuleset_Preconditions(t *testing.T) {
	c, err := profession.LoadDefault()
	require.NoError(t, err)
	assert.Panics(t, func() { progression.NewRuleset(config.Default().Rules, nil, fixedRoll(1), zap.NewNop()) })
	assert.Panics(t, func() { progression.NewRuleset(config.Default().Rules, c, nil, zap.NewNop()) })

	bad := config.Default().Rules
	bad.CheckDie = "twenty"
	assert.Panics(t, func() { progression.NewRuleset(bad, c, fixedRoll(1), zap.NewNop()) })
}
