package skillcheck

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/game/dice"
)

// Outcome is the 4-tier classification used to pick narration severity.
type Outcome int

const (
	CriticalFailure Outcome = iota
	Failure
	Success
	CriticalSuccess
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case CriticalFailure:
		return "critical failure"
	case Failure:
		return "failure"
	case Success:
		return "success"
	case CriticalSuccess:
		return "critical success"
	default:
		return "unknown"
	}
}

// Result is the ephemeral outcome of one check.
type Result struct {
	Success         bool
	Roll            int // raw die result
	Bonus           int // skill bonus added to Roll
	DifficultyClass int
	Natural1        bool // lowest possible face sum
	Natural20       bool // highest possible face sum, whatever the die
}

// Total returns Roll + Bonus.
func (r Result) Total() int {
	return r.Roll + r.Bonus
}

// Outcome classifies the result. The natural flags take priority over the
// modified total: a natural 1 is a critical failure even when the total beats
// the DC, and a natural 20 is a critical success only when the check succeeds.
func (r Result) Outcome() Outcome {
	switch {
	case r.Natural1:
		return CriticalFailure
	case r.Natural20 && r.Success:
		return CriticalSuccess
	case r.Success:
		return Success
	default:
		return Failure
	}
}

// Resolver rolls skill checks. It never consults abilities or modifiers;
// callers lower the DC before calling Check.
type Resolver struct {
	roller        *dice.Roller
	die           dice.Expression
	bonusPerLevel float64
	logger        *zap.Logger
}

// NewResolver creates a Resolver rolling die through a logged roller over src.
//
// Precondition: src and logger must be non-nil; die must come from
// dice.Parse; bonusPerLevel >= 0.
func NewResolver(src dice.Source, die dice.Expression, bonusPerLevel float64, logger *zap.Logger) *Resolver {
	if src == nil || logger == nil {
		panic("skillcheck.NewResolver: precondition violated: src and logger must be non-nil")
	}
	if die.Count < 1 || die.Sides < 2 {
		panic("skillcheck.NewResolver: precondition violated: die must be a parsed dice expression")
	}
	if bonusPerLevel < 0 {
		bonusPerLevel = 0
	}
	return &Resolver{
		roller:        dice.NewLoggedRoller(src, logger),
		die:           die,
		bonusPerLevel: bonusPerLevel,
		logger:        logger,
	}
}

// Die returns the expression rolled by every check.
func (r *Resolver) Die() dice.Expression { return r.die }

// SkillBonus returns the bonus granted by a skill level. Negative levels count as 0.
//
// Postcondition: monotonically non-decreasing in level; returns >= 0.
func (r *Resolver) SkillBonus(level int) int {
	if level < 0 {
		level = 0
	}
	return int(math.Floor(float64(level) * r.bonusPerLevel))
}

// Check rolls once and compares the die total plus SkillBonus(skillLevel) to
// difficultyClass. The die's own modifier is folded into Bonus; the natural
// flags mark the lowest and highest face sums the die can produce.
func (r *Resolver) Check(skillLevel, difficultyClass int) Result {
	rolled := r.roller.Roll(r.die)
	roll := rolled.Faces()
	bonus := r.SkillBonus(skillLevel) + rolled.Modifier
	res := Result{
		Success:         roll+bonus >= difficultyClass,
		Roll:            roll,
		Bonus:           bonus,
		DifficultyClass: difficultyClass,
		Natural1:        roll == r.die.MinFaces(),
		Natural20:       roll == r.die.MaxFaces(),
	}
	r.logger.Debug("skill check",
		zap.Int("roll", roll),
		zap.Int("bonus", bonus),
		zap.Int("dc", difficultyClass),
		zap.Bool("success", res.Success),
		zap.Stringer("outcome", res.Outcome()),
	)
	return res
}

// CheckDC is Check against a named difficulty class.
func (r *Resolver) CheckDC(skillLevel int, dc DC) Result {
	return r.Check(skillLevel, dc.Value())
}
