package alarm

import "time"

// EventType defines the type of Poller event.
type EventType string

const (
	EventTick  EventType = "tick"
	EventFired EventType = "fired"
)

// Event represents a Poller update for observers.
type Event struct {
	Type  EventType
	Alarm *Alarm // set for EventFired
	At    time.Time
}
