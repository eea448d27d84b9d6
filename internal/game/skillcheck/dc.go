// Package skillcheck resolves single-die skill checks against a difficulty class.
package skillcheck

import (
	"fmt"
	"strings"
)

// DC is an ordered difficulty class: Easy < Moderate < Hard < VeryHard.
type DC int

const (
	Easy DC = iota
	Moderate
	Hard
	VeryHard
)

var dcThresholds = [...]int{
	Easy:     8,
	Moderate: 12,
	Hard:     15,
	VeryHard: 18,
}

var dcNames = [...]string{
	Easy:     "easy",
	Moderate: "moderate",
	Hard:     "hard",
	VeryHard: "very_hard",
}

// Value returns the numeric threshold a modified roll must meet.
// Out-of-range classes resolve to the nearest defined class.
func (d DC) Value() int {
	return dcThresholds[d.clamp()]
}

// String returns the lower_snake name of the class.
func (d DC) String() string {
	return dcNames[d.clamp()]
}

func (d DC) clamp() DC {
	if d < Easy {
		return Easy
	}
	if d > VeryHard {
		return VeryHard
	}
	return d
}

// ParseDC converts a class name ("easy", "moderate", "hard", "very_hard") to a DC.
func ParseDC(s string) (DC, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range dcNames {
		if name == norm {
			return DC(i), nil
		}
	}
	return Easy, fmt.Errorf("skillcheck: unknown difficulty class %q", s)
}
