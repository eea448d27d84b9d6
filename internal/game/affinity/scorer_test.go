package affinity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/apothecary/internal/game/affinity"
	"github.com/cory-johannsen/apothecary/internal/game/profession"
)

func newScorer(t testing.TB) *affinity.Scorer {
	t.Helper()
	c, err := profession.LoadDefault()
	require.NoError(t, err)
	return affinity.NewScorer(c, affinity.DefaultWeights())
}

func TestDefaultWeights_Shape(t *testing.T) {
	for id, skills := range affinity.DefaultWeights() {
		assert.True(t, profession.Known(id))
		assert.GreaterOrEqual(t, len(skills), 3, "%s", id)
		assert.LessOrEqual(t, len(skills), 6, "%s", id)
		for skill, w := range skills {
			assert.GreaterOrEqual(t, w, 0.5, "%s/%s", id, skill)
			assert.LessOrEqual(t, w, 2.0, "%s/%s", id, skill)
		}
	}
}

func TestScore_SurgeonOutranksCourtPhysician(t *testing.T) {
	s := newScorer(t)
	scores := s.Score(map[string]int{"anatomy": 5, "diagnosis": 3})
	assert.Greater(t, scores[profession.Surgeon], scores[profession.CourtPhysician])

	ranked := s.Rank(scores)
	require.NotEmpty(t, ranked)
	assert.Equal(t, profession.Surgeon, ranked[0].Profession)
	assert.Equal(t, profession.Surgeon, s.Dominant(scores))
}

func TestScore_MissingAndNegativeSkillsContributeZero(t *testing.T) {
	s := newScorer(t)
	scores := s.Score(map[string]int{"anatomy": -10, "juggling": 40})
	for _, id := range profession.IDs() {
		assert.Zero(t, scores[id], "%s", id)
	}
}

func TestRank_TiesKeepDeclarationOrder(t *testing.T) {
	s := newScorer(t)
	ranked := s.Rank(s.Score(nil))
	require.Len(t, ranked, 6)
	for i, id := range profession.IDs() {
		assert.Equal(t, id, ranked[i].Profession)
	}
}

func TestDominant_DefaultsWhenAllZero(t *testing.T) {
	s := newScorer(t)
	assert.Equal(t, affinity.DefaultDominant, s.Dominant(s.Score(map[string]int{})))
	assert.Equal(t, affinity.DefaultDominant, s.Dominant(nil))
}

func TestRecommend_TopTwo(t *testing.T) {
	s := newScorer(t)
	rec := s.Recommend(map[string]int{"trading": 4, "toxicology": 3, "alchemy": 1})
	require.Len(t, rec, 2)
	assert.Equal(t, profession.Merchant, rec[0].Profession)
	assert.Equal(t, profession.Poisoner, rec[1].Profession)
}

// Property: Rank is sorted descending and is a permutation of the catalog.
func TestProperty_RankSortedDescending(t *testing.T) {
	s := newScorer(t)
	skills := []string{"alchemy", "anatomy", "trading", "toxicology", "herbalism", "medicine", "etiquette"}
	rapid.Check(t, func(rt *rapid.T) {
		levels := rapid.MapOf(rapid.SampledFrom(skills), rapid.IntRange(-5, 99)).Draw(rt, "skills")
		ranked := s.Rank(s.Score(levels))
		require.Len(rt, ranked, 6)
		seen := map[profession.ID]bool{}
		for i, r := range ranked {
			seen[r.Profession] = true
			if i > 0 {
				assert.GreaterOrEqual(rt, ranked[i-1].Score, r.Score)
			}
		}
		assert.Len(rt, seen, 6)
	})
}
