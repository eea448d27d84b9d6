package quest

import "go.uber.org/zap"

// State is a value snapshot of a Ledger for persistence.
type State struct {
	Active    []Quest        `json:"active"`
	Completed []Quest        `json:"completed"`
	Failed    []Quest        `json:"failed"`
	Cooldowns map[string]int `json:"cooldowns"`
}

// State returns a snapshot of the ledger.
func (l *Ledger) State() State {
	cooldowns := make(map[string]int, len(l.cooldowns))
	for k, v := range l.cooldowns {
		cooldowns[k] = v
	}
	return State{
		Active:    l.Active(),
		Completed: l.Completed(),
		Failed:    l.Failed(),
		Cooldowns: cooldowns,
	}
}

// Restore rebuilds a Ledger from s. The list a quest appears in decides its
// status. An ID seen a second time is dropped with a warning, so a corrupt
// snapshot cannot break ID uniqueness.
//
// Precondition: logger must be non-nil.
func Restore(s State, logger *zap.Logger) *Ledger {
	l := NewLedger(logger)
	load := func(qs []Quest, status Status, into *[]string) {
		for _, q := range qs {
			if q.ID == "" {
				logger.Warn("dropped restored quest with empty id")
				continue
			}
			if _, dup := l.quests[q.ID]; dup {
				logger.Warn("dropped duplicate restored quest", zap.String("quest_id", q.ID))
				continue
			}
			stored := q.clone()
			stored.Status = status
			l.quests[q.ID] = &stored
			*into = append(*into, q.ID)
		}
	}
	// Terminal states load first so a quest listed as both active and
	// resolved stays resolved.
	load(s.Completed, StatusCompleted, &l.completed)
	load(s.Failed, StatusFailed, &l.failed)
	load(s.Active, StatusActive, &l.active)
	for k, v := range s.Cooldowns {
		l.cooldowns[k] = v
	}
	return l
}
