package quest

import (
	"math"

	"go.uber.org/zap"
)

// Ledger tracks every quest ever proposed in a session.
//
// Invariant: a quest ID appears in exactly one of active, completed, failed,
// and once terminal it never returns to active. Propose enforces this by
// refusing any ID the ledger has seen before.
//
// A Ledger is owned by one session and is not safe for concurrent use.
type Ledger struct {
	logger    *zap.Logger
	quests    map[string]*Quest
	active    []string
	completed []string
	failed    []string
	cooldowns map[string]int
}

// NewLedger returns an empty Ledger.
//
// Precondition: logger must be non-nil.
func NewLedger(logger *zap.Logger) *Ledger {
	if logger == nil {
		panic("quest.NewLedger: precondition violated: logger must be non-nil")
	}
	return &Ledger{
		logger:    logger,
		quests:    make(map[string]*Quest),
		cooldowns: make(map[string]int),
	}
}

// Propose adds q to the active set.
//
// Postcondition: Returns true and stores q as active, or returns false and
// logs a warning when q.ID is empty or already known in any state.
func (l *Ledger) Propose(q Quest) bool {
	if q.ID == "" {
		l.logger.Warn("rejected quest proposal with empty id",
			zap.String("template_id", q.TemplateID),
		)
		return false
	}
	if existing, ok := l.quests[q.ID]; ok {
		l.logger.Warn("rejected duplicate quest proposal",
			zap.String("quest_id", q.ID),
			zap.String("existing_status", string(existing.Status)),
		)
		return false
	}
	stored := q.clone()
	stored.Status = StatusActive
	l.quests[q.ID] = &stored
	l.active = append(l.active, q.ID)
	l.logger.Debug("quest proposed",
		zap.String("quest_id", q.ID),
		zap.String("template_id", q.TemplateID),
	)
	return true
}

// Update applies patch to the active quest id in place.
//
// Postcondition: Returns false and logs a warning when id is not active.
func (l *Ledger) Update(id string, patch Patch) bool {
	q, ok := l.activeQuest(id, "update")
	if !ok {
		return false
	}
	patch.apply(q)
	return true
}

// Complete moves id from active to completed.
//
// Postcondition: Returns false and logs a warning when id is not active.
func (l *Ledger) Complete(id string) bool {
	return l.resolve(id, StatusCompleted)
}

// Fail moves id from active to failed.
//
// Postcondition: Returns false and logs a warning when id is not active.
func (l *Ledger) Fail(id string) bool {
	return l.resolve(id, StatusFailed)
}

func (l *Ledger) resolve(id string, to Status) bool {
	q, ok := l.activeQuest(id, string(to))
	if !ok {
		return false
	}
	q.Status = to
	l.active = remove(l.active, id)
	if to == StatusCompleted {
		l.completed = append(l.completed, id)
	} else {
		l.failed = append(l.failed, id)
	}
	l.logger.Debug("quest resolved",
		zap.String("quest_id", id),
		zap.String("status", string(to)),
	)
	return true
}

func (l *Ledger) activeQuest(id, op string) (*Quest, bool) {
	q, ok := l.quests[id]
	if !ok || q.Status != StatusActive {
		fields := []zap.Field{zap.String("quest_id", id), zap.String("op", op)}
		if ok {
			fields = append(fields, zap.String("status", string(q.Status)))
		}
		l.logger.Warn("quest is not active", fields...)
		return nil, false
	}
	return q, true
}

// SetCooldown records turn as the last resolution of templateID, replacing
// any earlier record.
func (l *Ledger) SetCooldown(templateID string, turn int) {
	l.cooldowns[templateID] = turn
}

// Cooldown returns the last recorded resolution turn of templateID.
func (l *Ledger) Cooldown(templateID string) (int, bool) {
	t, ok := l.cooldowns[templateID]
	return t, ok
}

// CooledDown reports whether at least cooldownTurns have passed since
// templateID last resolved. Templates with no record are always ready. The
// ledger only answers; the quest proposer decides what to do with it.
func (l *Ledger) CooledDown(templateID string, turn, cooldownTurns int) bool {
	last, ok := l.cooldowns[templateID]
	if !ok {
		return true
	}
	return turn-last >= cooldownTurns
}

// EffectiveCooldown scales a base cooldown by a multiplier, rounding up.
// Non-positive multipliers leave the base unchanged.
func EffectiveCooldown(base int, multiplier float64) int {
	if multiplier <= 0 {
		return base
	}
	return int(math.Ceil(float64(base) * multiplier))
}

// Get returns a copy of quest id in any state.
func (l *Ledger) Get(id string) (Quest, bool) {
	q, ok := l.quests[id]
	if !ok {
		return Quest{}, false
	}
	return q.clone(), true
}

// Status returns the state of quest id.
func (l *Ledger) Status(id string) (Status, bool) {
	q, ok := l.quests[id]
	if !ok {
		return "", false
	}
	return q.Status, true
}

// Active returns copies of the active quests in proposal order.
func (l *Ledger) Active() []Quest { return l.collect(l.active) }

// Completed returns copies of the completed quests in completion order.
func (l *Ledger) Completed() []Quest { return l.collect(l.completed) }

// Failed returns copies of the failed quests in failure order.
func (l *Ledger) Failed() []Quest { return l.collect(l.failed) }

func (l *Ledger) collect(ids []string) []Quest {
	out := make([]Quest, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.quests[id].clone())
	}
	return out
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
