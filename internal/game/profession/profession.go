// Package profession defines the six professions, their ability tables, and
// the closed vocabulary of modifier keys those abilities grant.
package profession

// ID identifies a profession. The set is closed; see IDs.
type ID string

const (
	Alchemist      ID = "alchemist"
	Herbalist      ID = "herbalist"
	Surgeon        ID = "surgeon"
	Poisoner       ID = "poisoner"
	CourtPhysician ID = "court_physician"
	Merchant       ID = "merchant"
)

// declared is the declaration order used for stable tie-breaking.
var declared = []ID{Alchemist, Herbalist, Surgeon, Poisoner, CourtPhysician, Merchant}

// IDs returns every profession ID in declaration order.
func IDs() []ID {
	out := make([]ID, len(declared))
	copy(out, declared)
	return out
}

// Known reports whether id is one of the six professions.
func Known(id ID) bool {
	return Ordinal(id) >= 0
}

// Ordinal returns the declaration index of id, or -1 if unknown.
func Ordinal(id ID) int {
	for i, d := range declared {
		if d == id {
			return i
		}
	}
	return -1
}

// Choice is the player's profession state: Unchosen, or Chosen(id).
// The zero value is Unchosen.
type Choice struct {
	id ID
}

// Unchosen returns the choice of a player who has not picked a profession.
func Unchosen() Choice { return Choice{} }

// Chosen returns the choice holding id.
func Chosen(id ID) Choice { return Choice{id: id} }

// Profession returns the chosen ID and true, or "" and false when Unchosen.
func (c Choice) Profession() (ID, bool) {
	return c.id, c.id != ""
}

// IsChosen reports whether a profession has been picked.
func (c Choice) IsChosen() bool { return c.id != "" }

// String returns the profession ID, or "unchosen".
func (c Choice) String() string {
	if c.id == "" {
		return "unchosen"
	}
	return string(c.id)
}

// Titles are the three display titles a profession earns by level tier.
type Titles struct {
	Base      string `yaml:"base"`
	Master    string `yaml:"master"`
	Legendary string `yaml:"legendary"`
}

// Ability is one bonus bundle unlocked at UnlockLevel.
type Ability struct {
	UnlockLevel int
	Name        string
	Description string
	Modifiers   map[Key]Value
}

// Defines reports whether the ability sets key, and the value it sets.
func (a Ability) Defines(key Key) (Value, bool) {
	v, ok := a.Modifiers[key]
	return v, ok
}

// Clone returns a copy of a that shares no map with it.
func (a Ability) Clone() Ability {
	mods := make(map[Key]Value, len(a.Modifiers))
	for k, v := range a.Modifiers {
		mods[k] = v
	}
	a.Modifiers = mods
	return a
}

// Profession is the immutable definition of one specialization.
//
// Invariant: Abilities are sorted by UnlockLevel, strictly ascending.
type Profession struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	Titles      Titles
	Abilities   []Ability
}

// Clone returns a deep copy of p.
func (p *Profession) Clone() *Profession {
	cp := *p
	cp.Abilities = make([]Ability, len(p.Abilities))
	for i, a := range p.Abilities {
		cp.Abilities[i] = a.Clone()
	}
	return &cp
}
