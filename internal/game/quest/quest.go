// Package quest holds the quest ledger: the state machine that moves quests
// from active to completed or failed and remembers when each template last
// resolved.
package quest

// Status is a quest's lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether s is completed or failed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Quest is one narrative task.
type Quest struct {
	ID           string            `json:"id"`
	TemplateID   string            `json:"template_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Stage        int               `json:"stage"`
	Status       Status            `json:"status"`
	ProposedTurn int               `json:"proposed_turn"`
	Data         map[string]string `json:"data,omitempty"`
}

func (q Quest) clone() Quest {
	if q.Data != nil {
		data := make(map[string]string, len(q.Data))
		for k, v := range q.Data {
			data[k] = v
		}
		q.Data = data
	}
	return q
}

// Patch lists the fields Update may change on an active quest. Nil fields are
// left alone; Data entries are merged, and an empty value deletes the entry.
type Patch struct {
	Stage       *int
	Title       *string
	Description *string
	Data        map[string]string
}

// StageTo returns a Patch that sets the stage.
func StageTo(stage int) Patch {
	return Patch{Stage: &stage}
}

func (p Patch) apply(q *Quest) {
	if p.Stage != nil {
		q.Stage = *p.Stage
	}
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	for k, v := range p.Data {
		if q.Data == nil {
			q.Data = make(map[string]string)
		}
		if v == "" {
			delete(q.Data, k)
			continue
		}
		q.Data[k] = v
	}
}
