package calendar

import (
	"testing"
	"time"

	"github.com/borgmon/deskclock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

// monday is 2024-03-04, 07:30:15 local time
var monday = time.Date(2024, 3, 4, 7, 30, 15, 0, time.Local)

func record(hour, minute int, days ...models.Weekday) models.AlarmRecord {
	return models.AlarmRecord{TimeOfDay: models.TimeOfDay{Hour: hour, Minute: minute}, RepeatDays: days}
}

func TestNextOccurrenceDaily(t *testing.T) {
	tests := []struct {
		name string
		rec  models.AlarmRecord
		want time.Time
	}{
		{"later today", record(9, 0), time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)},
		{"current minute", record(7, 30), time.Date(2024, 3, 4, 7, 30, 0, 0, time.Local)},
		{"tomorrow", record(6, 0), time.Date(2024, 3, 5, 6, 0, 0, 0, time.Local)},
		{"days ignored", record(6, 0, models.Friday), time.Date(2024, 3, 5, 6, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(tt.rec, monday, false)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestNextOccurrenceHonorsDays(t *testing.T) {
	got, err := NextOccurrence(record(6, 0, models.Wednesday, models.Friday), monday, true)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 6, 6, 0, 0, 0, time.Local).Equal(got), got)

	got, err = NextOccurrence(record(6, 0), monday, true)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 5, 6, 0, 0, 0, time.Local).Equal(got), "empty set repeats daily")
}

func TestRecurrenceFor(t *testing.T) {
	option := RecurrenceFor(record(7, 0, models.Monday, models.Sunday), monday, true)

	assert.Equal(t, rrule.WEEKLY, option.Freq)
	assert.Equal(t, []rrule.Weekday{rrule.MO, rrule.SU}, option.Byweekday)
	assert.Equal(t, 7, option.Dtstart.Hour())

	option = RecurrenceFor(record(7, 0, models.Monday), monday, false)
	assert.Equal(t, rrule.DAILY, option.Freq)
	assert.Empty(t, option.Byweekday)
}
