// Package replay drives a session from a YAML script of game-loop events.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/apothecary/internal/game/profession"
	"github.com/cory-johannsen/apothecary/internal/game/skillcheck"
)

// EventType names one kind of game-loop event.
type EventType string

const (
	EventAward    EventType = "award"
	EventChoose   EventType = "choose"
	EventPropose  EventType = "propose"
	EventAdvance  EventType = "advance"
	EventComplete EventType = "complete"
	EventFail     EventType = "fail"
	EventCooldown EventType = "cooldown"
	EventCheck    EventType = "check"
	EventEndTurn  EventType = "end_turn"
)

// QuestOffer describes a quest offered by a propose event.
type QuestOffer struct {
	ID          string            `yaml:"id"`
	Template    string            `yaml:"template"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Data        map[string]string `yaml:"data"`
}

// Event is one scripted game-loop event. Which fields apply depends on Type.
type Event struct {
	Type EventType `yaml:"type"`

	// award, check
	Skill  string `yaml:"skill"`
	Amount int    `yaml:"amount"`

	// choose
	Profession profession.ID `yaml:"profession"`

	// propose
	Quest *QuestOffer `yaml:"quest"`
	// Force proposes even while the template is cooling down.
	Force bool `yaml:"force"`

	// advance, complete, fail
	ID    string `yaml:"id"`
	Stage int    `yaml:"stage"`

	// cooldown
	Template string `yaml:"template"`
	Turn     int    `yaml:"turn"`

	// check
	DC     string         `yaml:"dc"`
	Relief profession.Key `yaml:"relief"`

	// end_turn
	Turns int `yaml:"turns"`
}

// Script is a player name plus the events to replay in order.
type Script struct {
	Player string  `yaml:"player"`
	Events []Event `yaml:"events"`
}

// Parse decodes and validates a script. Unknown fields are rejected.
func Parse(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, fmt.Errorf("parsing script: empty document")
		}
		return Script{}, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// LoadFile reads and parses the script at path.
func LoadFile(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("reading script %q: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}

// Validate checks every event has the fields its type needs.
func (s Script) Validate() error {
	var errs []error
	for i, e := range s.Events {
		if err := e.validate(); err != nil {
			errs = append(errs, fmt.Errorf("event %d (%s): %w", i, e.Type, err))
		}
	}
	return errors.Join(errs...)
}

func (e Event) validate() error {
	switch e.Type {
	case EventAward:
		if e.Skill == "" {
			return errors.New("skill is required")
		}
	case EventChoose:
		if e.Profession == "" {
			return errors.New("profession is required")
		}
	case EventPropose:
		if e.Quest == nil || e.Quest.ID == "" {
			return errors.New("quest.id is required")
		}
	case EventAdvance, EventComplete, EventFail:
		if e.ID == "" {
			return errors.New("id is required")
		}
	case EventCooldown:
		if e.Template == "" {
			return errors.New("template is required")
		}
	case EventCheck:
		if e.Skill == "" {
			return errors.New("skill is required")
		}
		if _, err := skillcheck.ParseDC(e.DC); err != nil {
			return err
		}
		if e.Relief != "" {
			if kind, ok := profession.KindOf(e.Relief); !ok || kind != profession.KindFlat {
				return fmt.Errorf("relief %q is not a flat modifier", e.Relief)
			}
		}
	case EventEndTurn:
		if e.Turns < 0 {
			return fmt.Errorf("turns must be >= 0, got %d", e.Turns)
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}
