// Package progression owns a player's level, experience, skills and
// profession choice, and answers the per-turn queries the game loop makes
// against them.
package progression

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/config"
	"github.com/cory-johannsen/apothecary/internal/game/affinity"
	"github.com/cory-johannsen/apothecary/internal/game/dice"
	"github.com/cory-johannsen/apothecary/internal/game/leveling"
	"github.com/cory-johannsen/apothecary/internal/game/modifier"
	"github.com/cory-johannsen/apothecary/internal/game/profession"
	"github.com/cory-johannsen/apothecary/internal/game/skillcheck"
	"github.com/cory-johannsen/apothecary/internal/game/title"
)

// Ruleset is the immutable wiring shared by every Service in a process.
type Ruleset struct {
	table     *leveling.Table
	catalog   *profession.Catalog
	modifiers *modifier.Resolver
	titles    *title.Resolver
	affinity  *affinity.Scorer
	checks    *skillcheck.Resolver

	choiceLevel   int
	levelCap      int
	questCooldown int
	toxic         map[string]bool
}

// NewRuleset builds a Ruleset from validated rules configuration.
//
// Precondition: catalog, src and logger must be non-nil; cfg must pass
// config validation.
func NewRuleset(cfg config.RulesConfig, catalog *profession.Catalog, src dice.Source, logger *zap.Logger) *Ruleset {
	if catalog == nil || src == nil || logger == nil {
		panic("progression.NewRuleset: precondition violated: catalog, src and logger must be non-nil")
	}
	if cfg.ProfessionChoiceLevel < 1 || cfg.LevelCap < cfg.ProfessionChoiceLevel {
		panic("progression.NewRuleset: precondition violated: need 1 <= choice level <= level cap")
	}
	toxic := make(map[string]bool, len(cfg.ToxicSkills))
	for _, s := range cfg.ToxicSkills {
		toxic[s] = true
	}
	tiers := title.Tiers{
		ChoiceLevel:    cfg.ProfessionChoiceLevel,
		MasterLevel:    cfg.MasterTitleLevel,
		LegendaryLevel: cfg.LevelCap,
	}
	return &Ruleset{
		table:         leveling.Default(cfg.ProfessionChoiceLevel),
		catalog:       catalog,
		modifiers:     modifier.NewResolver(catalog),
		titles:        title.NewResolver(catalog, tiers, nil),
		affinity:      affinity.NewScorer(catalog, affinity.DefaultWeights()),
		checks:        skillcheck.NewResolver(src, dice.MustParse(cfg.CheckDie), cfg.SkillBonusPerLevel, logger.Named("skillcheck")),
		choiceLevel:   cfg.ProfessionChoiceLevel,
		levelCap:      cfg.LevelCap,
		questCooldown: cfg.QuestCooldownTurns,
		toxic:         toxic,
	}
}

// Catalog returns the profession catalog.
func (r *Ruleset) Catalog() *profession.Catalog { return r.catalog }

// ChoiceLevel returns the level at which a profession may be chosen.
func (r *Ruleset) ChoiceLevel() int { return r.choiceLevel }

// LevelCap returns the maximum player and skill level.
func (r *Ruleset) LevelCap() int { return r.levelCap }

// QuestCooldownTurns returns the base quest template cooldown.
func (r *Ruleset) QuestCooldownTurns() int { return r.questCooldown }

// Toxic reports whether XP for skill is scaled by toxicXPMultiplier.
func (r *Ruleset) Toxic(skill string) bool { return r.toxic[skill] }
