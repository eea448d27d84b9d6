// Package leveling holds the XP curve: how much experience each level costs.
package leveling

// Band is one step of the XP curve: every level strictly below Below costs XP.
type Band struct {
	Below int
	XP    int
}

// Table is an ascending list of bands plus the requirement for every level
// past the last band.
//
// Invariant: Bands are sorted by Below, strictly ascending.
type Table struct {
	Bands []Band
	// Terminal is the requirement for levels at or above the last band.
	Terminal int
	// Baseline is the first level counted by TotalXPForLevel.
	Baseline int
}

// Default returns the standard curve with the given baseline level.
func Default(baseline int) *Table {
	return &Table{
		Bands: []Band{
			{Below: 5, XP: 50},
			{Below: 10, XP: 75},
			{Below: 20, XP: 100},
			{Below: 40, XP: 150},
			{Below: 60, XP: 200},
			{Below: 80, XP: 250},
		},
		Terminal: 300,
		Baseline: baseline,
	}
}

// XPForNextLevel returns the XP needed to advance from level to level+1.
// Levels below 1 are evaluated as level 1.
//
// Postcondition: Returns > 0.
func (t *Table) XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	for _, b := range t.Bands {
		if level < b.Below {
			return b.XP
		}
	}
	return t.Terminal
}

// TotalXPForLevel returns the XP needed to climb from Baseline to target.
// It is a projection only; nothing mutates state from it.
//
// Postcondition: Returns 0 when target <= Baseline.
func (t *Table) TotalXPForLevel(target int) int {
	total := 0
	for l := t.Baseline; l < target; l++ {
		total += t.XPForNextLevel(l)
	}
	return total
}

var std = Default(5)

// XPForNextLevel evaluates the standard curve.
func XPForNextLevel(level int) int { return std.XPForNextLevel(level) }

// TotalXPForLevel evaluates the standard curve from level 5.
func TotalXPForLevel(target int) int { return std.TotalXPForLevel(target) }
