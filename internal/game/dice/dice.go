// Package dice provides the randomness abstraction and dice expressions used
// by skill checks.
package dice

import "fmt"

// RollResult records one evaluated dice expression.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // e.g. "1d20+2"
	Dice       []int  // kept die faces, before the modifier
	Modifier   int
}

// Total returns the kept faces plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// Faces returns the kept faces without the modifier.
func (r RollResult) Faces() int {
	return r.Total() - r.Modifier
}

// String renders the roll as "1d20+2 -> [17] +2 = 19".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s -> %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
