package replay_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/apothecary/internal/config"
	"github.com/cory-johannsen/apothecary/internal/game/profession"
	"github.com/cory-johannsen/apothecary/internal/game/progression"
	"github.com/cory-johannsen/apothecary/internal/game/quest"
	"github.com/cory-johannsen/apothecary/internal/game/session"
	"github.com/cory-johannsen/apothecary/internal/game/skillcheck"
	"github.com/cory-johannsen/apothecary/internal/observability"
	"github.com/cory-johannsen/apothecary/internal/replay"
)

// fixedRoll always produces the given die face.
type fixedRoll int

func (f fixedRoll) Intn(n int) int { return int(f) - 1 }

func newTestSession(t *testing.T, face int) *session.Session {
	t.Helper()
	c, err := profession.LoadDefault()
	require.NoError(t, err)
	rules := progression.NewRuleset(config.Default().Rules, c, fixedRoll(face), zap.NewNop())
	return session.New(uuid.New(), "Wren", rules, zap.NewNop())
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := replay.Parse(strings.NewReader("player: Wren\nevents:\n  - type: award\n    skil: anatomy\n"))
	assert.Error(t, err)
}

func TestParse_RejectsEmpty(t *testing.T) {
	_, err := replay.Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParse_ValidatesEvents(t *testing.T) {
	cases := map[string]string{
		"unknown type":  "- type: teleport",
		"award":         "- type: award",
		"choose":        "- type: choose",
		"propose":       "- type: propose",
		"complete":      "- type: complete",
		"cooldown":      "- type: cooldown",
		"check dc":      "- {type: check, skill: anatomy, dc: impossible}",
		"check relief":  "- {type: check, skill: anatomy, dc: easy, relief: xpMultiplier}",
		"negative turn": "- {type: end_turn, turns: -1}",
	}
	for name, events := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := replay.Parse(strings.NewReader("events:\n" + events + "\n"))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_ExampleScript(t *testing.T) {
	script, err := replay.LoadFile("../../scripts/surgeon.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Wren", script.Player)
	assert.NotEmpty(t, script.Events)
}

func TestRun_ExampleScript(t *testing.T) {
	script, err := replay.LoadFile("../../scripts/surgeon.yaml")
	require.NoError(t, err)
	sess := newTestSession(t, 12)

	rep := replay.NewRunner(zap.NewNop(), nil).Run(sess, script)

	// The second leeches quest is refused while the template cools down.
	assert.Equal(t, 1, rep.Rejected)
	assert.Equal(t, len(script.Events)-1, rep.Applied)
	assert.Equal(t, 1, rep.ChoicePrompts)
	assert.Equal(t, 4, sess.Turn())

	id, ok := sess.Progression.Choice().Profession()
	require.True(t, ok)
	assert.Equal(t, profession.Surgeon, id)

	require.Len(t, rep.Checks, 1)
	check := rep.Checks[0]
	assert.Equal(t, skillcheck.Hard, check.DC)
	assert.Equal(t, 14, check.Result.DifficultyClass)

	st, ok := sess.Quests.Status("leeches-1")
	require.True(t, ok)
	assert.Equal(t, quest.StatusCompleted, st)
	_, ok = sess.Quests.Get("leeches-2")
	assert.False(t, ok)
	turn, ok := sess.Quests.Cooldown("fresh_leeches")
	require.True(t, ok)
	assert.Equal(t, 3, turn)
}

func TestRun_ForceIgnoresCooldown(t *testing.T) {
	sess := newTestSession(t, 10)
	sess.Quests.SetCooldown("herbs", 0)
	script := replay.Script{Events: []replay.Event{
		{Type: replay.EventPropose, Quest: &replay.QuestOffer{ID: "a", Template: "herbs"}},
		{Type: replay.EventPropose, Force: true, Quest: &replay.QuestOffer{ID: "b", Template: "herbs"}},
		{Type: replay.EventPropose, Force: true, Quest: &replay.QuestOffer{ID: "b", Template: "herbs"}},
	}}
	rep := replay.NewRunner(zap.NewNop(), nil).Run(sess, script)
	assert.Equal(t, 1, rep.Applied)
	assert.Equal(t, 2, rep.Rejected)
	assert.Len(t, sess.Quests.Active(), 1)
}

func TestRun_RejectedAwardAndChoice(t *testing.T) {
	sess := newTestSession(t, 10)
	script := replay.Script{Events: []replay.Event{
		{Type: replay.EventAward, Skill: "anatomy", Amount: 0},
		{Type: replay.EventChoose, Profession: profession.Surgeon},
		{Type: replay.EventCooldown, Template: "herbs", Turn: 7},
	}}
	rep := replay.NewRunner(zap.NewNop(), nil).Run(sess, script)
	assert.Equal(t, 2, rep.Rejected)
	assert.Equal(t, 1, rep.Applied)
	turn, _ := sess.Quests.Cooldown("herbs")
	assert.Equal(t, 7, turn)
}

func TestRun_RejectsCheckWithUnknownDifficulty(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sess := newTestSession(t, 10)
	script := replay.Script{Events: []replay.Event{
		{Type: replay.EventCheck, Skill: "anatomy", DC: "impossible"},
		{Type: replay.EventCheck, Skill: "anatomy", DC: "hard"},
	}}
	rep := replay.NewRunner(zap.New(core), nil).Run(sess, script)
	assert.Equal(t, 1, rep.Rejected)
	require.Len(t, rep.Checks, 1)
	assert.Equal(t, skillcheck.Hard, rep.Checks[0].DC)
	assert.Equal(t, 1, logs.FilterMessage("invalid skill check difficulty").Len())
}

func TestRun_RecordsMetrics(t *testing.T) {
	script, err := replay.LoadFile("../../scripts/surgeon.yaml")
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	rep := replay.NewRunner(zap.NewNop(), observability.NewMetrics(reg)).Run(newTestSession(t, 12), script)

	families, err := reg.Gather()
	require.NoError(t, err)
	totals := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				totals[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				totals[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, float64(rep.Applied+rep.Rejected), totals["apothecary_events_total"])
	assert.Equal(t, float64(len(rep.Checks)), totals["apothecary_skill_checks_total"])
	assert.Equal(t, float64(120+90+400), totals["apothecary_xp_awarded_total"])
	assert.Greater(t, totals["apothecary_player_level"], 5.0)
}
