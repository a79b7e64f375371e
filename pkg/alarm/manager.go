package alarm

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/borgmon/deskclock/pkg/calendar"
	"github.com/borgmon/deskclock/pkg/models"
)

// Store persists the alarm list
type Store interface {
	Load() []models.AlarmRecord
	Save(records []models.AlarmRecord) error
}

// Recorder journals alarm lifecycle steps
type Recorder interface {
	Record(ctx context.Context, entry models.HistoryEntry) error
}

// Option configures a Manager
type Option func(*Manager)

// WithRecorder journals lifecycle steps to r
func WithRecorder(r Recorder) Option {
	return func(m *Manager) {
		m.recorder = r
	}
}

// Manager owns the ordered alarm list. The list order is insertion order and display order.
type Manager struct {
	mu sync.Mutex

	alarms   []*Alarm
	store    Store
	env      *Env
	recorder Recorder
}

// NewManager creates a manager and loads the persisted alarms from store
func NewManager(store Store, env *Env, opts ...Option) *Manager {
	if env == nil {
		env = &Env{}
	}
	if env.Clock == nil {
		env.Clock = SystemClock{}
	}

	m := &Manager{
		store: store,
		env:   env,
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, rec := range store.Load() {
		m.alarms = append(m.alarms, FromRecord(rec, env))
	}
	log.Printf("Loaded %d alarms", len(m.alarms))

	return m
}

// AddAlarm appends a new alarm and persists the list.
// The alarm stays in the list even when saving fails.
func (m *Manager) AddAlarm(tod models.TimeOfDay, repeatDays []models.Weekday) (*Alarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := New(tod, repeatDays, m.env)
	m.alarms = append(m.alarms, a)
	m.record(a, models.HistoryAdded)

	if err := m.saveLocked(); err != nil {
		return a, err
	}
	return a, nil
}

// RemoveAlarm stops and removes a. Removing an alarm that is not managed is a no-op.
func (m *Manager) RemoveAlarm(a *Alarm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.Index(m.alarms, a)
	if idx < 0 {
		return nil
	}

	a.Stop()
	m.alarms = slices.Delete(m.alarms, idx, idx+1)
	m.record(a, models.HistoryRemoved)

	return m.saveLocked()
}

// CheckAlarms rings the first alarm that is due and returns it.
// At most one alarm rings per call; earlier alarms win ties.
func (m *Manager) CheckAlarms() *Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.alarms {
		if a.ShouldRing() {
			a.Ring()
			m.record(a, models.HistoryRang)
			return a
		}
	}
	return nil
}

// Stop silences a and ends its snooze cycle
func (m *Manager) Stop(a *Alarm) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.Stop()
	m.record(a, models.HistoryStopped)
}

// Snooze silences a and schedules it again after the next snooze step
func (m *Manager) Snooze(a *Alarm) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.Snooze()
	m.record(a, models.HistorySnoozed)
}

// IncreaseVolumes steps up the volume of every ringing alarm
func (m *Manager) IncreaseVolumes() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.alarms {
		if a.Ringing() {
			a.IncreaseVolume()
		}
	}
}

// Alarms returns a snapshot of the alarm list in display order
func (m *Manager) Alarms() []*Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.alarms)
}

// Ringing returns the alarms currently ringing
func (m *Manager) Ringing() []*Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()

	ringing := []*Alarm{}
	for _, a := range m.alarms {
		if a.Ringing() {
			ringing = append(ringing, a)
		}
	}
	return ringing
}

// Find returns the alarm with the given runtime ID
func (m *Manager) Find(id string) *Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.alarms {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Upcoming pairs an alarm with the instant it is next expected to fire
type Upcoming struct {
	Alarm *Alarm
	At    time.Time
}

// NextAlarm returns the alarm that fires soonest after now, honoring pending snoozes
func (m *Manager) NextAlarm(now time.Time) (Upcoming, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var next Upcoming
	found := false

	for _, a := range m.alarms {
		at, ok := a.SnoozeUntil()
		if !ok {
			var err error
			at, err = calendar.NextOccurrence(a.Record(), now, m.env.HonorRepeatDays)
			if err != nil {
				log.Printf("Failed to compute next occurrence for alarm %s: %v", a.TimeOfDay, err)
				continue
			}
		}
		if !found || at.Before(next.At) {
			next = Upcoming{Alarm: a, At: at}
			found = true
		}
	}

	return next, found
}

func (m *Manager) saveLocked() error {
	records := make([]models.AlarmRecord, len(m.alarms))
	for i, a := range m.alarms {
		records[i] = a.Record()
	}

	if err := m.store.Save(records); err != nil {
		log.Printf("Failed to save alarms: %v", err)
		return fmt.Errorf("save alarms: %w", err)
	}
	return nil
}

func (m *Manager) record(a *Alarm, action models.HistoryAction) {
	if m.recorder == nil {
		return
	}

	entry := models.HistoryEntry{
		AlarmID:   a.ID,
		TimeOfDay: a.TimeOfDay.String(),
		Action:    action,
		At:        m.env.now(),
	}
	if action == models.HistorySnoozed {
		entry.SnoozeMinutes = a.SnoozeMinutes()
	}

	if err := m.recorder.Record(context.Background(), entry); err != nil {
		log.Printf("Failed to record alarm history (%s): %v", action, err)
	}
}
