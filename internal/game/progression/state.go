package progression

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/game/profession"
)

// State is a value snapshot of a player's progression for persistence.
// The title and modifiers are derived and not stored.
type State struct {
	Level      int              `json:"level"`
	XP         int              `json:"xp"`
	Profession profession.ID    `json:"profession,omitempty"`
	Skills     map[string]Skill `json:"skills"`
}

// State returns a snapshot of the player.
func (s *Service) State() State {
	id, _ := s.p.choice.Profession()
	return State{
		Level:      s.p.level,
		XP:         s.p.xp,
		Profession: id,
		Skills:     s.Skills(),
	}
}

// Restore rebuilds a Service from st. Out-of-range numbers are clamped and a
// profession that is unknown, or chosen below the choice level, is dropped
// with a warning.
//
// Precondition: rules and logger must be non-nil.
func Restore(st State, rules *Ruleset, logger *zap.Logger) *Service {
	s := NewService(rules, logger)
	s.p.level = clamp(st.Level, 1, rules.levelCap)
	if s.p.level < rules.levelCap {
		s.p.xp = clamp(st.XP, 0, rules.table.XPForNextLevel(s.p.level)-1)
	}
	for id, sk := range st.Skills {
		if id == "" {
			continue
		}
		sk.Level = clamp(sk.Level, 1, rules.levelCap)
		sk.XP = max(sk.XP, 0)
		s.p.skills[id] = sk
	}
	if st.Profession != "" {
		_, known := rules.catalog.Get(st.Profession)
		switch {
		case !known:
			logger.Warn("dropped unknown restored profession", zap.String("profession", string(st.Profession)))
		case s.p.level < rules.choiceLevel:
			logger.Warn("dropped restored profession below choice level",
				zap.String("profession", string(st.Profession)),
				zap.Int("level", s.p.level),
			)
		default:
			s.p.choice = profession.Chosen(st.Profession)
		}
	}
	s.refreshTitle()
	return s
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
