// Package affinity scores how well a player's skills fit each profession.
// Scores are advisory: they drive the recommendation shown at the choice
// screen and never restrict the player's pick.
package affinity

import "github.com/cory-johannsen/apothecary/internal/game/profession"

// Weights maps a profession to its relevant skills and the weight of each.
type Weights map[profession.ID]map[string]float64

// DefaultWeights returns the built-in weight table. Each profession weighs
// three to six skills, each in [0.5, 2.0].
func DefaultWeights() Weights {
	return Weights{
		profession.Alchemist: {
			"alchemy":      2.0,
			"mixing":       1.5,
			"distillation": 1.5,
			"herbalism":    0.5,
		},
		profession.Herbalist: {
			"herbalism": 2.0,
			"foraging":  1.5,
			"botany":    1.5,
			"medicine":  0.5,
		},
		profession.Surgeon: {
			"anatomy":      2.0,
			"surgery":      2.0,
			"bloodletting": 1.5,
			"diagnosis":    0.5,
		},
		profession.Poisoner: {
			"toxicology": 2.0,
			"stealth":    1.0,
			"alchemy":    1.0,
			"herbalism":  0.5,
		},
		profession.CourtPhysician: {
			"medicine":   2.0,
			"diagnosis":  1.5,
			"etiquette":  1.5,
			"persuasion": 1.0,
			"anatomy":    0.5,
		},
		profession.Merchant: {
			"trading":    2.0,
			"appraisal":  1.5,
			"persuasion": 1.0,
			"etiquette":  0.5,
		},
	}
}
