package profession

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind is the fixed value type of a modifier key.
type Kind int

const (
	// KindMultiplier scales a quantity; valid values are > 0. Absent means 1.
	KindMultiplier Kind = iota
	// KindProbability is a chance or fraction in [0, 1]. Absent means 0.
	KindProbability
	// KindFlat is an integer bonus. Absent means 0.
	KindFlat
	// KindFlag grants a capability when true. Absent and false both mean not granted.
	KindFlag
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMultiplier:
		return "multiplier"
	case KindProbability:
		return "probability"
	case KindFlat:
		return "flat"
	case KindFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Key is a documented modifier identifier queried by gameplay systems.
type Key string

// The modifier vocabulary. The engine does not interpret these; mixing,
// foraging, bloodletting, market pricing and passive income do.
const (
	IngredientRetention          Key = "ingredientRetention"          // chance an ingredient survives mixing
	MixingTimeMultiplier         Key = "mixingTimeMultiplier"         // scales brewing time
	DoubleBatchChance            Key = "doubleBatchChance"            // chance a brew yields twice
	PreventSludge                Key = "preventSludge"                // failed brews never become sludge
	XPMultiplier                 Key = "xpMultiplier"                 // scales every XP award
	ToxicXPMultiplier            Key = "toxicXPMultiplier"            // scales XP from toxic skills
	ForagingSuccessMultiplier    Key = "foragingSuccessMultiplier"    // scales foraging success chance
	ForagingYieldBonus           Key = "foragingYieldBonus"           // extra items per successful forage
	BlackMarketDiscount          Key = "blackMarketDiscount"          // fraction off black market prices
	UnlockBlackMarket            Key = "unlockBlackMarket"            // black market is reachable
	PositiveReputationMultiplier Key = "positiveReputationMultiplier" // scales reputation gains
	PassiveIncomePerDay          Key = "passiveIncomePerDay"          // coins granted each day
	BloodlettingDCReduction      Key = "bloodlettingDCReduction"      // lowers bloodletting check DCs
	DiagnosisBonus               Key = "diagnosisBonus"               // flat bonus to diagnosis checks
	HealingMultiplier            Key = "healingMultiplier"            // scales remedy potency
	SellPriceMultiplier          Key = "sellPriceMultiplier"          // scales shop sell prices
	PoisonPotencyMultiplier      Key = "poisonPotencyMultiplier"      // scales poison strength
	QuestCooldownMultiplier      Key = "questCooldownMultiplier"      // scales quest template cooldowns
)

var keyKinds = map[Key]Kind{
	IngredientRetention:          KindProbability,
	MixingTimeMultiplier:         KindMultiplier,
	DoubleBatchChance:            KindProbability,
	PreventSludge:                KindFlag,
	XPMultiplier:                 KindMultiplier,
	ToxicXPMultiplier:            KindMultiplier,
	ForagingSuccessMultiplier:    KindMultiplier,
	ForagingYieldBonus:           KindFlat,
	BlackMarketDiscount:          KindProbability,
	UnlockBlackMarket:            KindFlag,
	PositiveReputationMultiplier: KindMultiplier,
	PassiveIncomePerDay:          KindFlat,
	BloodlettingDCReduction:      KindFlat,
	DiagnosisBonus:               KindFlat,
	HealingMultiplier:            KindMultiplier,
	SellPriceMultiplier:          KindMultiplier,
	PoisonPotencyMultiplier:      KindMultiplier,
	QuestCooldownMultiplier:      KindMultiplier,
}

// KindOf returns the value kind of key and whether key is in the vocabulary.
func KindOf(key Key) (Kind, bool) {
	k, ok := keyKinds[key]
	return k, ok
}

// Keys returns the full vocabulary, sorted.
func Keys() []Key {
	out := make([]Key, 0, len(keyKinds))
	for k := range keyKinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Value is a typed modifier value. Construct with Multiplier, Probability,
// Flat or Flag, or with ParseValue.
type Value struct {
	kind Kind
	num  float64
	flag bool
}

// Multiplier returns a multiplier value.
func Multiplier(f float64) Value { return Value{kind: KindMultiplier, num: f} }

// Probability returns a probability value.
func Probability(f float64) Value { return Value{kind: KindProbability, num: f} }

// Flat returns an integer bonus value.
func Flat(n int) Value { return Value{kind: KindFlat, num: float64(n)} }

// Flag returns a boolean value.
func Flag(b bool) Value { return Value{kind: KindFlag, flag: b} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric value; flags report 1 for true and 0 for false.
func (v Value) Float() float64 {
	if v.kind == KindFlag {
		if v.flag {
			return 1
		}
		return 0
	}
	return v.num
}

// Int returns the numeric value rounded to the nearest integer.
func (v Value) Int() int { return int(math.Round(v.Float())) }

// Bool reports whether a flag is granted. Numeric values report true when non-zero.
func (v Value) Bool() bool {
	if v.kind == KindFlag {
		return v.flag
	}
	return v.num != 0
}

// String formats the value for logs.
func (v Value) String() string {
	switch v.kind {
	case KindFlag:
		return strconv.FormatBool(v.flag)
	case KindFlat:
		return strconv.Itoa(v.Int())
	default:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
}

// ParseValue converts a raw decoded value into the typed Value for key,
// enforcing the key's kind and range.
func ParseValue(key Key, raw interface{}) (Value, error) {
	kind, ok := KindOf(key)
	if !ok {
		return Value{}, fmt.Errorf("unknown modifier key %q", key)
	}
	if kind == KindFlag {
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("modifier %q must be a boolean, got %T", key, raw)
		}
		return Flag(b), nil
	}

	var f float64
	switch n := raw.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64:
		f = n
	default:
		return Value{}, fmt.Errorf("modifier %q must be numeric, got %T", key, raw)
	}

	switch kind {
	case KindMultiplier:
		if f <= 0 {
			return Value{}, fmt.Errorf("modifier %q must be > 0, got %g", key, f)
		}
		return Multiplier(f), nil
	case KindProbability:
		if f < 0 || f > 1 {
			return Value{}, fmt.Errorf("modifier %q must be in [0, 1], got %g", key, f)
		}
		return Probability(f), nil
	default:
		if f != math.Trunc(f) {
			return Value{}, fmt.Errorf("modifier %q must be an integer, got %g", key, f)
		}
		return Flat(int(f)), nil
	}
}
