package profession

import (
	"fmt"
	"sort"
)

// Catalog is the immutable set of loaded professions. It owns its data:
// NewCatalog copies its input and every accessor returns a copy.
type Catalog struct {
	byID map[ID]*Profession
}

// NewCatalog validates profs and builds a Catalog. Abilities are sorted by
// unlock level.
//
// Postcondition: Returns a Catalog or an error naming the first invalid profession:
// unknown or duplicate ID, empty name or titles, unlock level < 1, or two
// abilities sharing an unlock level.
func NewCatalog(profs ...*Profession) (*Catalog, error) {
	c := &Catalog{byID: make(map[ID]*Profession, len(profs))}
	for _, p := range profs {
		if p == nil {
			return nil, fmt.Errorf("profession must not be nil")
		}
		if !Known(p.ID) {
			return nil, fmt.Errorf("unknown profession id %q", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate profession id %q", p.ID)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("profession %q: name must not be empty", p.ID)
		}
		if p.Titles.Base == "" || p.Titles.Master == "" || p.Titles.Legendary == "" {
			return nil, fmt.Errorf("profession %q: base, master and legendary titles are required", p.ID)
		}
		cp := p.Clone()
		abilities := cp.Abilities
		sort.SliceStable(abilities, func(i, j int) bool {
			return abilities[i].UnlockLevel < abilities[j].UnlockLevel
		})
		for i, a := range abilities {
			if a.UnlockLevel < 1 {
				return nil, fmt.Errorf("profession %q: ability %q unlock level must be >= 1", p.ID, a.Name)
			}
			if i > 0 && abilities[i-1].UnlockLevel == a.UnlockLevel {
				return nil, fmt.Errorf("profession %q: two abilities unlock at level %d", p.ID, a.UnlockLevel)
			}
		}
		c.byID[p.ID] = cp
	}
	return c, nil
}

// MustCatalog is NewCatalog that panics on error. Intended for tests and fixtures.
func MustCatalog(profs ...*Profession) *Catalog {
	c, err := NewCatalog(profs...)
	if err != nil {
		panic("profession: MustCatalog: " + err.Error())
	}
	return c
}

// Get returns a copy of the profession for id, or (nil, false) if not loaded.
func (c *Catalog) Get(id ID) (*Profession, bool) {
	p, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// All returns copies of the loaded professions in declaration order.
func (c *Catalog) All() []*Profession {
	out := make([]*Profession, 0, len(c.byID))
	for _, id := range declared {
		if p, ok := c.byID[id]; ok {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Len returns the number of loaded professions.
func (c *Catalog) Len() int { return len(c.byID) }
