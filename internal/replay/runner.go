package replay

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/game/quest"
	"github.com/cory-johannsen/apothecary/internal/game/session"
	"github.com/cory-johannsen/apothecary/internal/game/skillcheck"
	"github.com/cory-johannsen/apothecary/internal/observability"
)

// CheckRecord is the outcome of one scripted skill check.
type CheckRecord struct {
	Turn    int
	Skill   string
	DC      skillcheck.DC
	Result  skillcheck.Result
	Outcome skillcheck.Outcome
}

// Report summarizes a replay.
type Report struct {
	// Applied counts events the session accepted.
	Applied int
	// Rejected counts events the session refused; each was logged.
	Rejected int
	// ChoicePrompts counts awards that opened the profession choice.
	ChoicePrompts int
	// Checks holds every skill check in script order.
	Checks []CheckRecord
}

// Runner replays scripts against sessions.
type Runner struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewRunner creates a Runner. metrics may be nil.
//
// Precondition: logger must be non-nil.
func NewRunner(logger *zap.Logger, metrics *observability.Metrics) *Runner {
	if logger == nil {
		panic("replay.NewRunner: precondition violated: logger must be non-nil")
	}
	return &Runner{logger: logger, metrics: metrics}
}

// Run applies every event of script to sess in order. Rejected events are
// counted and replay continues.
//
// Precondition: script should have passed Validate; a check with an unknown
// difficulty is rejected.
func (r *Runner) Run(sess *session.Session, script Script) Report {
	var rep Report
	for i, e := range script.Events {
		ok := r.apply(sess, e, &rep)
		r.observe(sess, e, ok)
		if ok {
			rep.Applied++
			continue
		}
		rep.Rejected++
		r.logger.Info("event rejected",
			zap.Int("index", i),
			zap.String("type", string(e.Type)),
			zap.Int("turn", sess.Turn()),
		)
	}
	return rep
}

func (r *Runner) observe(sess *session.Session, e Event, applied bool) {
	if r.metrics == nil {
		return
	}
	result := "applied"
	if !applied {
		result = "rejected"
	}
	r.metrics.Events.WithLabelValues(string(e.Type), result).Inc()
	r.metrics.PlayerLevel.Set(float64(sess.Progression.Level()))
}

func (r *Runner) apply(sess *session.Session, e Event, rep *Report) bool {
	switch e.Type {
	case EventAward:
		res := sess.Progression.AwardXP(e.Skill, e.Amount)
		if res.ChoiceAvailable {
			rep.ChoicePrompts++
		}
		if r.metrics != nil {
			r.metrics.XPAwarded.Add(float64(res.Gained))
			if res.LeveledUp {
				r.metrics.LevelUps.Inc()
			}
		}
		return res.Gained > 0
	case EventChoose:
		return sess.Progression.ChooseProfession(e.Profession)
	case EventPropose:
		if !e.Force && !sess.TemplateReady(e.Quest.Template) {
			r.logger.Info("quest template cooling down",
				zap.String("template", e.Quest.Template),
				zap.Int("cooldown", sess.QuestCooldown()),
			)
			return false
		}
		return sess.ProposeQuest(quest.Quest{
			ID:          e.Quest.ID,
			TemplateID:  e.Quest.Template,
			Title:       e.Quest.Title,
			Description: e.Quest.Description,
			Data:        e.Quest.Data,
		})
	case EventAdvance:
		return sess.Quests.Update(e.ID, quest.StageTo(e.Stage))
	case EventComplete:
		return sess.CompleteQuest(e.ID)
	case EventFail:
		return sess.FailQuest(e.ID)
	case EventCooldown:
		sess.Quests.SetCooldown(e.Template, e.Turn)
		return true
	case EventCheck:
		dc, err := skillcheck.ParseDC(e.DC)
		if err != nil {
			r.logger.Warn("invalid skill check difficulty",
				zap.String("skill", e.Skill),
				zap.String("dc", e.DC),
				zap.Error(err),
			)
			return false
		}
		res := sess.Progression.SkillCheck(e.Skill, dc, e.Relief)
		rep.Checks = append(rep.Checks, CheckRecord{
			Turn:    sess.Turn(),
			Skill:   e.Skill,
			DC:      dc,
			Result:  res,
			Outcome: res.Outcome(),
		})
		if r.metrics != nil {
			r.metrics.SkillChecks.WithLabelValues(res.Outcome().String()).Inc()
		}
		r.logger.Debug("skill check",
			zap.String("skill", e.Skill),
			zap.Stringer("dc", dc),
			zap.Int("roll", res.Roll),
			zap.Int("total", res.Total()),
			zap.Stringer("outcome", res.Outcome()),
		)
		return true
	case EventEndTurn:
		n := e.Turns
		if n == 0 {
			n = 1
		}
		for range n {
			sess.EndTurn()
		}
		return true
	}
	return false
}
