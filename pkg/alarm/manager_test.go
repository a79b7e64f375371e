package alarm

import (
	"sync"
	"testing"
	"time"

	"github.com/borgmon/deskclock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, records ...models.AlarmRecord) (*Manager, *memStore, *fakeClock, *memRecorder) {
	t.Helper()

	store := &memStore{records: records}
	clock := newFakeClock(monday0730)
	recorder := &memRecorder{}
	env := &Env{Clock: clock, Audio: &fakeAudio{}, SoundPath: "alarm.wav"}

	return NewManager(store, env, WithRecorder(recorder)), store, clock, recorder
}

func TestNewManagerLoadsRecords(t *testing.T) {
	m, _, _, _ := newTestManager(t,
		models.AlarmRecord{TimeOfDay: at(6, 0), RepeatDays: []models.Weekday{}},
		models.AlarmRecord{TimeOfDay: at(7, 30), RepeatDays: []models.Weekday{models.Monday}},
	)

	alarms := m.Alarms()
	require.Len(t, alarms, 2)
	assert.Equal(t, at(6, 0), alarms[0].TimeOfDay)
	assert.Equal(t, at(7, 30), alarms[1].TimeOfDay)
	assert.NotEqual(t, alarms[0].ID, alarms[1].ID)
}

func TestAddAlarmPersists(t *testing.T) {
	m, store, _, recorder := newTestManager(t)

	a, err := m.AddAlarm(at(9, 15), []models.Weekday{models.Friday})
	require.NoError(t, err)

	assert.Equal(t, []*Alarm{a}, m.Alarms())
	assert.Equal(t, []models.AlarmRecord{{TimeOfDay: at(9, 15), RepeatDays: []models.Weekday{models.Friday}}}, store.records)
	assert.Equal(t, []models.HistoryAction{models.HistoryAdded}, recorder.actions())
}

func TestAddAlarmKeepsAlarmWhenSaveFails(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	store.saveErr = errDiskFull

	a, err := m.AddAlarm(at(9, 15), nil)

	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, []*Alarm{a}, m.Alarms())
}

func TestCheckAlarmsFirstMatchWins(t *testing.T) {
	m, _, _, recorder := newTestManager(t)
	first, err := m.AddAlarm(at(7, 30), nil)
	require.NoError(t, err)
	second, err := m.AddAlarm(at(7, 30), nil)
	require.NoError(t, err)

	fired := m.CheckAlarms()

	assert.Same(t, first, fired)
	assert.True(t, first.Ringing())
	assert.False(t, second.Ringing())
	assert.Equal(t, []*Alarm{first}, m.Ringing())
	assert.Contains(t, recorder.actions(), models.HistoryRang)

	// The second alarm gets its turn on the next tick
	assert.Same(t, second, m.CheckAlarms())
}

func TestCheckAlarmsNothingDue(t *testing.T) {
	m, _, _, _ := newTestManager(t, models.AlarmRecord{TimeOfDay: at(8, 0)})

	assert.Nil(t, m.CheckAlarms())
}

func TestRemoveRingingAlarmStopsIt(t *testing.T) {
	m, store, _, recorder := newTestManager(t, models.AlarmRecord{TimeOfDay: at(7, 30)})
	a := m.CheckAlarms()
	require.NotNil(t, a)
	audio := a.env.Audio.(*fakeAudio)
	require.True(t, audio.playing)

	require.NoError(t, m.RemoveAlarm(a))

	assert.False(t, a.Ringing())
	assert.False(t, audio.playing)
	assert.Empty(t, m.Alarms())
	assert.Empty(t, store.records)
	assert.Equal(t, []models.HistoryAction{models.HistoryRang, models.HistoryRemoved}, recorder.actions())
}

func TestRemoveUnknownAlarmIsNoOp(t *testing.T) {
	m, store, _, _ := newTestManager(t, models.AlarmRecord{TimeOfDay: at(7, 30)})
	stranger := New(at(7, 30), nil, nil)

	require.NoError(t, m.RemoveAlarm(stranger))

	assert.Len(t, m.Alarms(), 1)
	assert.Zero(t, store.saves)
}

func TestStopAndSnoozeRecordHistory(t *testing.T) {
	m, _, clock, recorder := newTestManager(t, models.AlarmRecord{TimeOfDay: at(7, 30)})
	a := m.CheckAlarms()
	require.NotNil(t, a)

	m.Snooze(a)
	clock.Advance(5 * time.Minute)
	require.Same(t, a, m.CheckAlarms())
	m.Stop(a)

	assert.Equal(t, []models.HistoryAction{
		models.HistoryRang,
		models.HistorySnoozed,
		models.HistoryRang,
		models.HistoryStopped,
	}, recorder.actions())
	assert.Equal(t, 5, recorder.entries[1].SnoozeMinutes)
	assert.Equal(t, "07:30", recorder.entries[0].TimeOfDay)
	assert.Equal(t, a.ID, recorder.entries[0].AlarmID)
}

func TestIncreaseVolumesOnlyTouchesRinging(t *testing.T) {
	m, _, _, _ := newTestManager(t,
		models.AlarmRecord{TimeOfDay: at(7, 30)},
		models.AlarmRecord{TimeOfDay: at(8, 0)},
	)
	ringing := m.CheckAlarms()
	require.NotNil(t, ringing)

	m.IncreaseVolumes()

	alarms := m.Alarms()
	assert.Equal(t, 0.35, alarms[0].Volume())
	assert.Equal(t, InitialVolume, alarms[1].Volume())
}

func TestFind(t *testing.T) {
	m, _, _, _ := newTestManager(t, models.AlarmRecord{TimeOfDay: at(7, 30)})
	a := m.Alarms()[0]

	assert.Same(t, a, m.Find(a.ID))
	assert.Nil(t, m.Find("missing"))
}

func TestNextAlarm(t *testing.T) {
	m, _, _, _ := newTestManager(t,
		models.AlarmRecord{TimeOfDay: at(6, 0)},
		models.AlarmRecord{TimeOfDay: at(9, 0)},
	)

	next, ok := m.NextAlarm(monday0730)
	require.True(t, ok)
	assert.Equal(t, at(9, 0), next.Alarm.TimeOfDay)
	assert.True(t, next.At.Equal(time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)), next.At)

	next, ok = m.NextAlarm(time.Date(2024, 3, 4, 22, 0, 0, 0, time.Local))
	require.True(t, ok)
	assert.Equal(t, at(6, 0), next.Alarm.TimeOfDay)
	assert.True(t, next.At.Equal(time.Date(2024, 3, 5, 6, 0, 0, 0, time.Local)), next.At)
}

func TestNextAlarmPrefersPendingSnooze(t *testing.T) {
	m, _, _, _ := newTestManager(t,
		models.AlarmRecord{TimeOfDay: at(7, 30)},
		models.AlarmRecord{TimeOfDay: at(9, 0)},
	)
	a := m.CheckAlarms()
	require.NotNil(t, a)
	m.Snooze(a)

	next, ok := m.NextAlarm(monday0730)
	require.True(t, ok)
	assert.Same(t, a, next.Alarm)
	assert.Equal(t, monday0730.Add(5*time.Minute), next.At)
}

func TestNextAlarmEmpty(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	_, ok := m.NextAlarm(monday0730)
	assert.False(t, ok)
}

func TestStatusReadsWhileManagerMutates(t *testing.T) {
	m, _, clock, _ := newTestManager(t)
	a, err := m.AddAlarm(at(7, 30), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for n := 0; n < 200; n++ {
			m.CheckAlarms()
			m.IncreaseVolumes()
			m.Snooze(a)
			clock.Advance(20 * time.Minute)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			for _, current := range m.Alarms() {
				_ = current.Ringing()
				_, _ = current.SnoozeUntil()
				_ = current.SnoozeMinutes()
				_ = current.Volume()
				_ = current.Label()
			}
		}
	}()

	wg.Wait()
	assert.Equal(t, MaxSnoozeMinutes, a.SnoozeMinutes())
}
