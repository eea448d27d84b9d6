// Package modifier resolves a profession's unlocked abilities into one
// effective value per modifier key.
//
// Resolution is replace, not combine: walking the unlocked abilities in
// ascending unlock level, each ability that defines a key overwrites the
// running value, so the highest unlocked definition wins. A level-25
// "xpMultiplier: 1.5" supersedes a level-15 "xpMultiplier: 1.25"; it does not
// stack with it.
//
// Everything here is a pure projection of (profession, level). Nothing is
// cached, so callers may query as often as they like.
package modifier

import (
	"github.com/cory-johannsen/apothecary/internal/game/profession"
)

// Resolver projects a catalog's ability tables.
type Resolver struct {
	catalog *profession.Catalog
}

// NewResolver creates a Resolver over catalog.
//
// Precondition: catalog must be non-nil.
func NewResolver(catalog *profession.Catalog) *Resolver {
	if catalog == nil {
		panic("modifier.NewResolver: precondition violated: catalog must be non-nil")
	}
	return &Resolver{catalog: catalog}
}

// Unlocked returns every ability of the chosen profession whose unlock level
// is <= level, ascending by unlock level. The abilities are copies; writing
// to them never reaches the catalog.
//
// Postcondition: Returns an empty slice when choice is Unchosen or names a
// profession absent from the catalog.
func (r *Resolver) Unlocked(choice profession.Choice, level int) []profession.Ability {
	id, ok := choice.Profession()
	if !ok {
		return []profession.Ability{}
	}
	p, ok := r.catalog.Get(id)
	if !ok {
		return []profession.Ability{}
	}
	out := make([]profession.Ability, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		if a.UnlockLevel > level {
			break
		}
		out = append(out, a)
	}
	return out
}

// Effective returns the value of key granted at level, and false when no
// unlocked ability defines key. False means "no bonus"; it is not a zero.
func (r *Resolver) Effective(choice profession.Choice, level int, key profession.Key) (profession.Value, bool) {
	return resolve(r.Unlocked(choice, level), key)
}

// Snapshot returns the full derived view for (choice, level).
func (r *Resolver) Snapshot(choice profession.Choice, level int) Snapshot {
	unlocked := r.Unlocked(choice, level)
	values := make(map[profession.Key]profession.Value)
	for _, a := range unlocked {
		for k, v := range a.Modifiers {
			values[k] = v
		}
	}
	return Snapshot{
		Choice:    choice,
		Level:     level,
		Abilities: unlocked,
		values:    values,
	}
}

func resolve(unlocked []profession.Ability, key profession.Key) (profession.Value, bool) {
	var (
		best  profession.Value
		found bool
	)
	for _, a := range unlocked {
		if v, ok := a.Defines(key); ok {
			best, found = v, true
		}
	}
	return best, found
}
