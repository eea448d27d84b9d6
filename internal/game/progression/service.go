package progression

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/game/affinity"
	"github.com/cory-johannsen/apothecary/internal/game/modifier"
	"github.com/cory-johannsen/apothecary/internal/game/profession"
	"github.com/cory-johannsen/apothecary/internal/game/skillcheck"
)

// Skill is a player's standing in one skill.
type Skill struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

// AwardResult reports what an XP award changed.
type AwardResult struct {
	// Gained is the XP actually credited after modifiers.
	Gained int
	// LeveledUp is true when the player level increased.
	LeveledUp bool
	// NewLevel is the player level after the award.
	NewLevel int
	// SkillLevel is the awarded skill's level after the award.
	SkillLevel int
	// ChoiceAvailable is true when this award carried an unchosen player
	// across the profession choice level.
	ChoiceAvailable bool
}

type player struct {
	level  int
	xp     int
	choice profession.Choice
	skills map[string]Skill
	title  string
}

// Service is the only mutation point for one player's progression.
//
// A Service is owned by a single session and is not safe for concurrent use.
type Service struct {
	rules  *Ruleset
	logger *zap.Logger
	p      player
}

// NewService creates a level 1 player with no skills and no profession.
//
// Precondition: rules and logger must be non-nil.
func NewService(rules *Ruleset, logger *zap.Logger) *Service {
	if rules == nil || logger == nil {
		panic("progression.NewService: precondition violated: rules and logger must be non-nil")
	}
	s := &Service{
		rules:  rules,
		logger: logger,
		p: player{
			level:  1,
			skills: make(map[string]Skill),
		},
	}
	s.refreshTitle()
	return s
}

// AwardXP credits amount XP in skillID, scaled by the effective
// xpMultiplier and, for toxic skills, toxicXPMultiplier. Scaled XP beyond
// what the player and the skill can still use before the level cap is
// discarded, so Gained is 0 once both are capped.
//
// Postcondition: an empty skill or a non-positive amount is logged and
// ignored, returning a zero AwardResult with NewLevel set.
func (s *Service) AwardXP(skillID string, amount int) AwardResult {
	if skillID == "" || amount <= 0 {
		s.logger.Warn("ignored invalid xp award",
			zap.String("skill", skillID),
			zap.Int("amount", amount),
		)
		return AwardResult{NewLevel: s.p.level, SkillLevel: s.p.skills[skillID].Level}
	}

	mods := s.Modifiers()
	mult := mods.Multiplier(profession.XPMultiplier)
	if s.rules.Toxic(skillID) {
		mult *= mods.Multiplier(profession.ToxicXPMultiplier)
	}

	sk := s.p.skills[skillID]
	if sk.Level < 1 {
		sk.Level = 1
	}
	skillRoom := s.toCap(sk.Level, sk.XP)
	playerRoom := s.toCap(s.p.level, s.p.xp)
	gained := scaleXP(amount, mult, max(skillRoom, playerRoom))
	if gained == 0 {
		s.logger.Debug("xp discarded at level cap", zap.String("skill", skillID), zap.Int("amount", amount))
	}

	sk.Level, sk.XP = s.advance(sk.Level, sk.XP+min(gained, skillRoom))
	s.p.skills[skillID] = sk

	prev := s.p.level
	s.p.level, s.p.xp = s.advance(s.p.level, s.p.xp+min(gained, playerRoom))

	crossed := prev < s.rules.choiceLevel && s.p.level >= s.rules.choiceLevel
	res := AwardResult{
		Gained:          gained,
		LeveledUp:       s.p.level > prev,
		NewLevel:        s.p.level,
		SkillLevel:      sk.Level,
		ChoiceAvailable: crossed && !s.p.choice.IsChosen(),
	}
	if res.LeveledUp {
		s.refreshTitle()
		s.logger.Info("player leveled up",
			zap.Int("from", prev),
			zap.Int("to", s.p.level),
			zap.String("title", s.p.title),
		)
	}
	if res.ChoiceAvailable {
		recs := s.Recommendations()
		fields := make([]zap.Field, 0, len(recs))
		for i, r := range recs {
			fields = append(fields, zap.String(rankField(i), string(r.Profession)))
		}
		s.logger.Info("profession choice available", fields...)
	}
	return res
}

func rankField(i int) string {
	if i == 0 {
		return "recommended"
	}
	return "runner_up"
}

// scaleXP returns round(amount * mult), saturated to [0, room].
func scaleXP(amount int, mult float64, room int) int {
	scaled := math.Round(float64(amount) * mult)
	if !(scaled > 0) {
		return 0
	}
	if scaled >= float64(room) {
		return room
	}
	return int(scaled)
}

// toCap returns the XP still needed to go from (level, xp) to the level cap.
func (s *Service) toCap(level, xp int) int {
	total := -xp
	for l := level; l < s.rules.levelCap; l++ {
		total += s.rules.table.XPForNextLevel(l)
	}
	return max(total, 0)
}

// advance consumes xp into levels along the curve, stopping at the level cap.
// XP earned at the cap is discarded.
func (s *Service) advance(level, xp int) (int, int) {
	for level < s.rules.levelCap {
		need := s.rules.table.XPForNextLevel(level)
		if xp < need {
			return level, xp
		}
		xp -= need
		level++
	}
	return s.rules.levelCap, 0
}

// ChooseProfession sets the player's profession once.
//
// Postcondition: Returns true when the choice was recorded. Returns false and
// logs a warning when a profession is already chosen, the player is below the
// choice level, or id is not in the catalog.
func (s *Service) ChooseProfession(id profession.ID) bool {
	if current, ok := s.p.choice.Profession(); ok {
		s.logger.Warn("profession already chosen",
			zap.String("current", string(current)),
			zap.String("requested", string(id)),
		)
		return false
	}
	if s.p.level < s.rules.choiceLevel {
		s.logger.Warn("profession chosen below choice level",
			zap.String("requested", string(id)),
			zap.Int("level", s.p.level),
			zap.Int("choice_level", s.rules.choiceLevel),
		)
		return false
	}
	if _, ok := s.rules.catalog.Get(id); !ok {
		s.logger.Warn("unknown profession", zap.String("requested", string(id)))
		return false
	}
	s.p.choice = profession.Chosen(id)
	s.refreshTitle()
	s.logger.Info("profession chosen",
		zap.String("profession", string(id)),
		zap.String("title", s.p.title),
	)
	return true
}

func (s *Service) refreshTitle() {
	s.p.title = s.rules.titles.Title(s.p.level, s.p.choice, s.skillLevels())
}

func (s *Service) skillLevels() map[string]int {
	out := make(map[string]int, len(s.p.skills))
	for id, sk := range s.p.skills {
		out[id] = sk.Level
	}
	return out
}

// Level returns the player level.
func (s *Service) Level() int { return s.p.level }

// XP returns the XP earned toward the next level.
func (s *Service) XP() int { return s.p.xp }

// XPToNextLevel returns the XP still needed for the next level, or 0 at the cap.
func (s *Service) XPToNextLevel() int {
	if s.p.level >= s.rules.levelCap {
		return 0
	}
	return s.rules.table.XPForNextLevel(s.p.level) - s.p.xp
}

// Choice returns the player's profession choice.
func (s *Service) Choice() profession.Choice { return s.p.choice }

// Skills returns a copy of the player's skills.
func (s *Service) Skills() map[string]Skill {
	out := make(map[string]Skill, len(s.p.skills))
	for id, sk := range s.p.skills {
		out[id] = sk
	}
	return out
}

// SkillIDs returns the known skill IDs, sorted.
func (s *Service) SkillIDs() []string {
	out := make([]string, 0, len(s.p.skills))
	for id := range s.p.skills {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Title returns the current display title.
func (s *Service) Title() string { return s.p.title }

// PendingChoice reports whether the player may choose a profession now.
func (s *Service) PendingChoice() bool {
	return !s.p.choice.IsChosen() && s.p.level >= s.rules.choiceLevel
}

// Affinities returns every profession ranked by affinity with the player's skills.
func (s *Service) Affinities() []affinity.Ranked {
	return s.rules.affinity.Rank(s.rules.affinity.Score(s.skillLevels()))
}

// Recommendations returns the two professions best matching the player's skills.
func (s *Service) Recommendations() []affinity.Ranked {
	return s.rules.affinity.Recommend(s.skillLevels())
}

// Modifiers returns the modifier snapshot for the current profession and level.
func (s *Service) Modifiers() modifier.Snapshot {
	return s.rules.modifiers.Snapshot(s.p.choice, s.p.level)
}

// Modifier returns the effective value of key; false means no bonus.
func (s *Service) Modifier(key profession.Key) (profession.Value, bool) {
	return s.rules.modifiers.Effective(s.p.choice, s.p.level, key)
}

// ProjectedXP returns the XP curve total from the choice level to target.
func (s *Service) ProjectedXP(target int) int {
	return s.rules.table.TotalXPForLevel(target)
}

// SkillCheck rolls a check with the player's level in skillID against dc,
// lowered by the flat modifier relief when one is given. The DC never drops
// below 1.
func (s *Service) SkillCheck(skillID string, dc skillcheck.DC, relief profession.Key) skillcheck.Result {
	target := dc.Value()
	if relief != "" {
		if kind, ok := profession.KindOf(relief); !ok || kind != profession.KindFlat {
			s.logger.Warn("ignored non-flat dc relief", zap.String("key", string(relief)))
		} else {
			target -= s.Modifiers().Flat(relief)
		}
	}
	if target < 1 {
		target = 1
	}
	return s.rules.checks.Check(s.p.skills[skillID].Level, target)
}
