// Package telemetry provides ecosystem health tracking, bookmarking and event logs.
package telemetry

import (
	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/status"
	"github.com/pthm-cable/foodweb/systems"
)

// EventType identifies telemetry events.
type EventType string

const (
	EventKill     EventType = "kill"
	EventBirth    EventType = "birth"
	EventDeath    EventType = "death"
	EventRegrowth EventType = "regrowth"
	EventStatus   EventType = "status"
)

// Event is one line of the event log.
type Event struct {
	Type     EventType `json:"type"`
	Tick     int64     `json:"tick"`
	EntityID int       `json:"id,omitempty"`
	Kind     string    `json:"kind,omitempty"`

	// Optional fields depending on event type
	TargetID int             `json:"target,omitempty"` // victim for kills, parent for births
	Amount   int             `json:"amount,omitempty"` // energy gained, or grass regrown
	Pos      *model.Position `json:"pos,omitempty"`
	Detail   string          `json:"detail,omitempty"` // death cause or status label
}

// EventsFromReport flattens a tick report into events, kills first.
func EventsFromReport(r systems.TickReport) []Event {
	events := make([]Event, 0, len(r.Kills)+len(r.Deaths)+len(r.Births)+1)
	for _, k := range r.Kills {
		events = append(events, Event{
			Type:     EventKill,
			Tick:     r.Tick,
			EntityID: k.EaterID,
			Kind:     k.Eater.String(),
			TargetID: k.VictimID,
			Amount:   k.Gain,
		})
	}
	for _, d := range r.Deaths {
		events = append(events, Event{
			Type:     EventDeath,
			Tick:     r.Tick,
			EntityID: d.ID,
			Kind:     d.Kind.String(),
			Detail:   d.Cause.String(),
		})
	}
	for _, b := range r.Births {
		pos := b.Pos
		events = append(events, Event{
			Type:     EventBirth,
			Tick:     r.Tick,
			EntityID: b.ChildID,
			Kind:     b.Kind.String(),
			TargetID: b.ParentID,
			Pos:      &pos,
		})
	}
	if r.Regrown > 0 {
		events = append(events, Event{Type: EventRegrowth, Tick: r.Tick, Amount: r.Regrown})
	}
	return events
}

// NewStatusEvent records a status classification change.
func NewStatusEvent(tick int64, s status.Status) Event {
	return Event{Type: EventStatus, Tick: tick, Detail: s.String()}
}
