package modifier

import (
	"sort"

	"github.com/cory-johannsen/apothecary/internal/game/profession"
)

// Snapshot is the read-only modifier view for one (profession, level).
// It is rebuilt on every query and never mutated.
type Snapshot struct {
	Choice    profession.Choice
	Level     int
	Abilities []profession.Ability
	values    map[profession.Key]profession.Value
}

// Get returns the effective value of key and whether any unlocked ability sets it.
func (s Snapshot) Get(key profession.Key) (profession.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Multiplier returns the effective multiplier for key, or 1 when absent.
func (s Snapshot) Multiplier(key profession.Key) float64 {
	if v, ok := s.values[key]; ok {
		return v.Float()
	}
	return 1
}

// Probability returns the effective probability for key, or 0 when absent.
func (s Snapshot) Probability(key profession.Key) float64 {
	if v, ok := s.values[key]; ok {
		return v.Float()
	}
	return 0
}

// Flat returns the effective integer bonus for key, or 0 when absent.
func (s Snapshot) Flat(key profession.Key) int {
	if v, ok := s.values[key]; ok {
		return v.Int()
	}
	return 0
}

// Flag reports whether key is granted. Absent and false are both "not granted".
func (s Snapshot) Flag(key profession.Key) bool {
	v, ok := s.values[key]
	return ok && v.Bool()
}

// Keys returns the keys defined by any unlocked ability, sorted.
func (s Snapshot) Keys() []profession.Key {
	out := make([]profession.Key, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
