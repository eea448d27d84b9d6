package affinity

import (
	"sort"

	"github.com/cory-johannsen/apothecary/internal/game/profession"
)

// DefaultDominant is reported by Dominant when no profession scores above zero.
const DefaultDominant = profession.Alchemist

// Ranked is one entry of a ranking.
type Ranked struct {
	Profession profession.ID
	Score      float64
}

// Scorer computes affinity scores for the professions in a catalog.
type Scorer struct {
	catalog *profession.Catalog
	weights Weights
}

// NewScorer creates a Scorer. The catalog supplies the professions and their
// order; the weights supply the scoring.
//
// Precondition: catalog must be non-nil.
func NewScorer(catalog *profession.Catalog, weights Weights) *Scorer {
	if catalog == nil {
		panic("affinity.NewScorer: precondition violated: catalog must be non-nil")
	}
	if weights == nil {
		weights = Weights{}
	}
	return &Scorer{catalog: catalog, weights: weights}
}

// Score returns the weighted skill sum for every profession in the catalog.
// Missing skills and negative levels contribute 0.
func (s *Scorer) Score(skillLevels map[string]int) map[profession.ID]float64 {
	out := make(map[profession.ID]float64, s.catalog.Len())
	for _, p := range s.catalog.All() {
		total := 0.0
		for skill, w := range s.weights[p.ID] {
			if lvl := skillLevels[skill]; lvl > 0 {
				total += w * float64(lvl)
			}
		}
		out[p.ID] = total
	}
	return out
}

// Rank orders scores descending. Ties keep declaration order.
func (s *Scorer) Rank(scores map[profession.ID]float64) []Ranked {
	out := make([]Ranked, 0, len(scores))
	for _, p := range s.catalog.All() {
		if sc, ok := scores[p.ID]; ok {
			out = append(out, Ranked{Profession: p.ID, Score: sc})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Recommend returns the top two professions for the given skills.
func (s *Scorer) Recommend(skillLevels map[string]int) []Ranked {
	ranked := s.Rank(s.Score(skillLevels))
	if len(ranked) > 2 {
		ranked = ranked[:2]
	}
	return ranked
}

// Dominant returns the highest-scoring profession, or DefaultDominant when
// every score is zero or scores is empty.
func (s *Scorer) Dominant(scores map[profession.ID]float64) profession.ID {
	ranked := s.Rank(scores)
	if len(ranked) == 0 || ranked[0].Score <= 0 {
		return DefaultDominant
	}
	return ranked[0].Profession
}
