package models

import "time"

// HistoryAction is a lifecycle step recorded in the alarm history
type HistoryAction string

const (
	HistoryAdded   HistoryAction = "added"
	HistoryRemoved HistoryAction = "removed"
	HistoryRang    HistoryAction = "rang"
	HistoryStopped HistoryAction = "stopped"
	HistorySnoozed HistoryAction = "snoozed"
)

// HistoryEntry is one row of the alarm history journal
type HistoryEntry struct {
	ID            int64         `json:"id" yaml:"id"`
	AlarmID       string        `json:"alarm_id" yaml:"alarm_id"`     // runtime UUID of the alarm
	TimeOfDay     string        `json:"time_of_day" yaml:"time_of_day"`
	Action        HistoryAction `json:"action" yaml:"action"`
	At            time.Time     `json:"at" yaml:"at"`
	SnoozeMinutes int           `json:"snooze_minutes,omitempty" yaml:"snooze_minutes,omitempty"` // set for snoozed entries
}
