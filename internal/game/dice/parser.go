package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression: Count dice of Sides faces, the
// KeepHighest best of them when > 0, plus Modifier.
type Expression struct {
	Raw         string
	Count       int
	Sides       int
	Modifier    int
	KeepHighest int
}

// Kept returns the number of dice that count toward the total.
func (e Expression) Kept() int {
	if e.KeepHighest > 0 {
		return e.KeepHighest
	}
	return e.Count
}

// MinFaces returns the lowest possible sum of the kept dice.
func (e Expression) MinFaces() int { return e.Kept() }

// MaxFaces returns the highest possible sum of the kept dice.
func (e Expression) MaxFaces() int { return e.Kept() * e.Sides }

// Parse parses "d20", "1d20", "2d6+3", "3d8-1" or "4d6kh3".
//
// Postcondition: on success Count >= 1, Sides >= 2 and
// 0 <= KeepHighest < Count.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	countStr, rest, ok := strings.Cut(s, "d")
	if !ok {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	e := Expression{Raw: expr, Count: 1}
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 {
			return Expression{}, fmt.Errorf("dice: die count in %q must be a positive integer", expr)
		}
		e.Count = n
	}

	// The modifier is the trailing signed integer, if any.
	if i := strings.LastIndexAny(rest, "+-"); i > 0 {
		m, err := strconv.Atoi(rest[i:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
		e.Modifier = m
		rest = rest[:i]
	}

	sidesStr, khStr, hasKH := strings.Cut(rest, "kh")
	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 2 {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be an integer >= 2", expr)
	}
	e.Sides = sides

	if hasKH {
		kh, err := strconv.Atoi(khStr)
		if err != nil || kh < 1 || kh >= e.Count {
			return Expression{}, fmt.Errorf("dice: kh value in %q must be > 0 and < count %d", expr, e.Count)
		}
		e.KeepHighest = kh
	}
	return e, nil
}

// MustParse is Parse for expressions known to be valid.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
