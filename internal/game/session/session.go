// Package session ties one player's progression and quest ledger together
// under a turn counter, and tracks the sessions live in a process.
package session

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/game/profession"
	"github.com/cory-johannsen/apothecary/internal/game/progression"
	"github.com/cory-johannsen/apothecary/internal/game/quest"
)

// Session is one game in progress. Turns start at 0.
//
// A Session must be driven by one goroutine at a time; the game loop is
// turn based and never mutates a session concurrently.
type Session struct {
	// ID identifies the session in storage.
	ID uuid.UUID
	// PlayerName is informational and used in logs.
	PlayerName string
	// Progression owns the player's level, skills and profession.
	Progression *progression.Service
	// Quests owns the quest state machine.
	Quests *quest.Ledger

	turn   int
	rules  *progression.Ruleset
	logger *zap.Logger
}

// New creates a fresh session for playerName.
//
// Precondition: rules and logger must be non-nil.
func New(id uuid.UUID, playerName string, rules *progression.Ruleset, logger *zap.Logger) *Session {
	if rules == nil || logger == nil {
		panic("session.New: precondition violated: rules and logger must be non-nil")
	}
	logger = logger.With(zap.String("session_id", id.String()), zap.String("player", playerName))
	return &Session{
		ID:          id,
		PlayerName:  playerName,
		Progression: progression.NewService(rules, logger.Named("progression")),
		Quests:      quest.NewLedger(logger.Named("quest")),
		rules:       rules,
		logger:      logger,
	}
}

// Turn returns the current turn number.
func (s *Session) Turn() int { return s.turn }

// EndTurn advances the turn counter and returns the new turn.
func (s *Session) EndTurn() int {
	s.turn++
	return s.turn
}

// ProposeQuest stamps q with the current turn and adds it to the ledger.
func (s *Session) ProposeQuest(q quest.Quest) bool {
	q.ProposedTurn = s.turn
	return s.Quests.Propose(q)
}

// CompleteQuest completes quest id and starts its template's cooldown.
func (s *Session) CompleteQuest(id string) bool {
	if !s.Quests.Complete(id) {
		return false
	}
	s.startCooldown(id)
	return true
}

// FailQuest fails quest id and starts its template's cooldown.
func (s *Session) FailQuest(id string) bool {
	if !s.Quests.Fail(id) {
		return false
	}
	s.startCooldown(id)
	return true
}

func (s *Session) startCooldown(id string) {
	q, _ := s.Quests.Get(id)
	if q.TemplateID == "" {
		return
	}
	s.Quests.SetCooldown(q.TemplateID, s.turn)
}

// QuestCooldown returns the template cooldown in turns after the player's
// questCooldownMultiplier.
func (s *Session) QuestCooldown() int {
	mult := s.Progression.Modifiers().Multiplier(profession.QuestCooldownMultiplier)
	return quest.EffectiveCooldown(s.rules.QuestCooldownTurns(), mult)
}

// TemplateReady reports whether templateID may be proposed again this turn.
func (s *Session) TemplateReady(templateID string) bool {
	return s.Quests.CooledDown(templateID, s.turn, s.QuestCooldown())
}

// Snapshot is the persisted form of a Session.
type Snapshot struct {
	ID          uuid.UUID         `json:"id"`
	PlayerName  string            `json:"player_name"`
	Turn        int               `json:"turn"`
	Progression progression.State `json:"progression"`
	Quests      quest.State       `json:"quests"`
}

// Snapshot returns the persisted form of s.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:          s.ID,
		PlayerName:  s.PlayerName,
		Turn:        s.turn,
		Progression: s.Progression.State(),
		Quests:      s.Quests.State(),
	}
}

// Restore rebuilds a Session from snap. Negative turns are clamped to 0.
//
// Precondition: rules and logger must be non-nil.
func Restore(snap Snapshot, rules *progression.Ruleset, logger *zap.Logger) *Session {
	s := New(snap.ID, snap.PlayerName, rules, logger)
	s.turn = max(snap.Turn, 0)
	s.Progression = progression.Restore(snap.Progression, rules, s.logger.Named("progression"))
	s.Quests = quest.Restore(snap.Quests, s.logger.Named("quest"))
	return s
}
