package alarm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/borgmon/deskclock/pkg/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeAudio struct {
	loadErr error
	calls   []string
	volume  float64
	playing bool
}

func (f *fakeAudio) Load(string) error {
	f.calls = append(f.calls, "load")
	return f.loadErr
}

func (f *fakeAudio) SetVolume(v float64) {
	f.calls = append(f.calls, "volume")
	f.volume = v
}

func (f *fakeAudio) PlayLooping() error {
	f.calls = append(f.calls, "play")
	f.playing = true
	return nil
}

func (f *fakeAudio) Stop() {
	f.calls = append(f.calls, "stop")
	f.playing = false
}

type memStore struct {
	records []models.AlarmRecord
	saves   int
	saveErr error
}

func (s *memStore) Load() []models.AlarmRecord {
	return append([]models.AlarmRecord(nil), s.records...)
}

func (s *memStore) Save(records []models.AlarmRecord) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records = append([]models.AlarmRecord(nil), records...)
	return nil
}

type memRecorder struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
}

func (r *memRecorder) Record(_ context.Context, entry models.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memRecorder) actions() []models.HistoryAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]models.HistoryAction, len(r.entries))
	for i, e := range r.entries {
		actions[i] = e.Action
	}
	return actions
}

var errDiskFull = errors.New("disk full")

// monday0730 is a Monday at 07:30:15 local time
var monday0730 = time.Date(2024, 3, 4, 7, 30, 15, 0, time.Local)

func at(hour, minute int) models.TimeOfDay {
	return models.TimeOfDay{Hour: hour, Minute: minute}
}
