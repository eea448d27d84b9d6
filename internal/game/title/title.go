// Package title resolves the display title for a player's level and profession.
package title

import (
	"github.com/cory-johannsen/apothecary/internal/game/profession"
)

// Neutral is shown to players past the choice level who have not picked a profession.
const Neutral = "Unaffiliated Apothecary"

// DefaultPreProfession holds one canonical title per level before the choice level.
var DefaultPreProfession = map[int]string{
	1: "Village Dabbler",
	2: "Herb Gatherer",
	3: "Apprentice Apothecary",
	4: "Journeyman Apothecary",
}

// Tiers are the levels at which profession titles change.
type Tiers struct {
	// ChoiceLevel is the first level of the base title and the end of pre-profession titles.
	ChoiceLevel int
	// MasterLevel is the first level of the master title.
	MasterLevel int
	// LegendaryLevel is the level cap; reaching it earns the legendary title.
	LegendaryLevel int
}

// DefaultTiers returns the standard 5 / 50 / 99 tiers.
func DefaultTiers() Tiers {
	return Tiers{ChoiceLevel: 5, MasterLevel: 50, LegendaryLevel: 99}
}

// Resolver computes titles from a catalog and a tier table.
type Resolver struct {
	catalog *profession.Catalog
	tiers   Tiers
	pre     map[int]string
	lowest  int
}

// NewResolver creates a Resolver. A nil pre map uses DefaultPreProfession.
//
// Precondition: catalog must be non-nil.
func NewResolver(catalog *profession.Catalog, tiers Tiers, pre map[int]string) *Resolver {
	if catalog == nil {
		panic("title.NewResolver: precondition violated: catalog must be non-nil")
	}
	if pre == nil {
		pre = DefaultPreProfession
	}
	lowest := 0
	for lvl := range pre {
		if lowest == 0 || lvl < lowest {
			lowest = lvl
		}
	}
	return &Resolver{catalog: catalog, tiers: tiers, pre: pre, lowest: lowest}
}

// Title returns the display title for level and choice. No title rule reads
// skills yet.
func (r *Resolver) Title(level int, choice profession.Choice, _ map[string]int) string {
	if level < r.tiers.ChoiceLevel {
		return r.preProfession(level)
	}
	id, ok := choice.Profession()
	if !ok {
		return Neutral
	}
	p, ok := r.catalog.Get(id)
	if !ok {
		return Neutral
	}
	switch {
	case level >= r.tiers.LegendaryLevel:
		return p.Titles.Legendary
	case level >= r.tiers.MasterLevel:
		return p.Titles.Master
	default:
		return p.Titles.Base
	}
}

// preProfession returns the title of the nearest defined level at or below
// level. Levels below every defined title use the lowest one.
func (r *Resolver) preProfession(level int) string {
	for l := level; l >= r.lowest; l-- {
		if t, ok := r.pre[l]; ok {
			return t
		}
	}
	if t, ok := r.pre[r.lowest]; ok {
		return t
	}
	return Neutral
}
