package alarm

import (
	"log"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/borgmon/deskclock/pkg/models"
	"github.com/google/uuid"
)

const (
	// InitialVolume is the volume a ring starts at
	InitialVolume = 0.3
	// VolumeStep is added on every tick while ringing
	VolumeStep = 0.05
	// MaxVolume caps the gradual wake-up
	MaxVolume = 1.0

	// SnoozeStep widens the snooze window on each consecutive snooze
	SnoozeStep = 5
	// MaxSnoozeMinutes caps the snooze window
	MaxSnoozeMinutes = 15
)

// Env carries the capabilities every alarm of a manager shares
type Env struct {
	Clock     Clock
	Audio     AudioDevice // nil means silent
	SoundPath string

	// HonorRepeatDays restricts time-of-day firing to the selected weekdays.
	// Off by default: alarms fire every day at their time regardless of RepeatDays.
	HonorRepeatDays bool
}

func (e *Env) now() time.Time {
	if e == nil || e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// Alarm is a single scheduled alarm and its ringing state.
// ID, TimeOfDay and RepeatDays are fixed at creation; the rest is guarded by mu.
type Alarm struct {
	ID         string // runtime only, regenerated on every load
	TimeOfDay  models.TimeOfDay
	RepeatDays []models.Weekday

	env *Env

	mu              sync.Mutex
	ringing         bool
	snoozeUntil     time.Time // zero when not snoozed
	snoozeMinutes   int
	volume          float64
	lastTriggerDate models.Date
}

// New creates an idle alarm bound to env
func New(tod models.TimeOfDay, repeatDays []models.Weekday, env *Env) *Alarm {
	if repeatDays == nil {
		repeatDays = []models.Weekday{}
	}
	if env == nil {
		env = &Env{Clock: SystemClock{}}
	}

	return &Alarm{
		ID:         uuid.New().String(),
		TimeOfDay:  tod,
		RepeatDays: slices.Clone(repeatDays),
		env:        env,
		volume:     InitialVolume,
	}
}

// FromRecord restores an alarm from its persisted form. Runtime state starts at defaults.
func FromRecord(rec models.AlarmRecord, env *Env) *Alarm {
	return New(rec.TimeOfDay, rec.RepeatDays, env)
}

// Record returns the persisted form of the alarm
func (a *Alarm) Record() models.AlarmRecord {
	return models.AlarmRecord{
		TimeOfDay:  a.TimeOfDay,
		RepeatDays: slices.Clone(a.RepeatDays),
	}
}

// Ring starts the alarm. It is a no-op if already ringing.
// A missing or unplayable sound still leaves the alarm ringing, just silently.
func (a *Alarm) Ring() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ringing {
		return
	}

	if dev := a.env.Audio; dev != nil {
		if err := dev.Load(a.env.SoundPath); err != nil {
			log.Printf("Failed to load alarm sound %q, ringing silently: %v", a.env.SoundPath, err)
		} else {
			dev.SetVolume(a.volume)
			if err := dev.PlayLooping(); err != nil {
				log.Printf("Failed to play alarm sound, ringing silently: %v", err)
			}
		}
	}

	a.ringing = true
	a.lastTriggerDate = models.DateOf(a.env.now())
	// A spent deadline must not match again on the next tick; the step is kept for the next snooze
	a.snoozeUntil = time.Time{}
}

// Stop silences the alarm and ends any snooze cycle
func (a *Alarm) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.halt()
	a.snoozeUntil = time.Time{}
	a.snoozeMinutes = 0
}

// Snooze silences the alarm and defers it by 5, 10, then 15 minutes on successive snoozes
func (a *Alarm) Snooze() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.halt()

	a.snoozeMinutes = min(MaxSnoozeMinutes, a.snoozeMinutes+SnoozeStep)
	a.snoozeUntil = a.env.now().Add(time.Duration(a.snoozeMinutes) * time.Minute)
}

// halt stops playback this alarm owns. Idle alarms leave the shared device alone. Callers hold mu.
func (a *Alarm) halt() {
	if a.ringing && a.env.Audio != nil {
		a.env.Audio.Stop()
	}
	a.ringing = false
}

// ShouldRing reports whether the alarm is due at the current clock time
func (a *Alarm) ShouldRing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.env.now()

	if !a.snoozeUntil.IsZero() {
		return !now.Before(a.snoozeUntil)
	}

	if a.lastTriggerDate == models.DateOf(now) {
		return false
	}

	if a.env.HonorRepeatDays && len(a.RepeatDays) > 0 && !slices.Contains(a.RepeatDays, models.WeekdayOf(now)) {
		return false
	}

	return a.TimeOfDay.Matches(now)
}

// IncreaseVolume raises the volume one step while ringing, up to MaxVolume
func (a *Alarm) IncreaseVolume() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ringing || a.volume >= MaxVolume {
		return
	}

	// Round to hundredths so repeated steps land exactly on 1.0
	a.volume = math.Min(MaxVolume, math.Round((a.volume+VolumeStep)*100)/100)
	if a.env.Audio != nil {
		a.env.Audio.SetVolume(a.volume)
	}
}

// Ringing reports whether the alarm sound is active
func (a *Alarm) Ringing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ringing
}

// Snoozed reports whether a snooze deadline is pending
func (a *Alarm) Snoozed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return !a.snoozeUntil.IsZero()
}

// SnoozeUntil returns the pending snooze deadline, if any
func (a *Alarm) SnoozeUntil() (time.Time, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.snoozeUntil, !a.snoozeUntil.IsZero()
}

// SnoozeMinutes returns the current snooze step
func (a *Alarm) SnoozeMinutes() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.snoozeMinutes
}

// Volume returns the current playback volume
func (a *Alarm) Volume() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.volume
}

// LastTriggerDate returns the date the alarm last rang, zero if never
func (a *Alarm) LastTriggerDate() models.Date {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.lastTriggerDate
}

// Label renders the alarm for lists, e.g. "07:30  Mon Wed"
func (a *Alarm) Label() string {
	return a.TimeOfDay.String() + "  " + a.Record().DaysLabel()
}
