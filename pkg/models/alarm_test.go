package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"07:30", TimeOfDay{Hour: 7, Minute: 30}, false},
		{"00:00", TimeOfDay{}, false},
		{" 23:59 ", TimeOfDay{Hour: 23, Minute: 59}, false},
		{"7:30", TimeOfDay{}, true},
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayMatchesIgnoresSeconds(t *testing.T) {
	tod := TimeOfDay{Hour: 7, Minute: 30}

	assert.True(t, tod.Matches(time.Date(2024, 3, 4, 7, 30, 0, 0, time.Local)))
	assert.True(t, tod.Matches(time.Date(2024, 3, 4, 7, 30, 59, 999, time.Local)))
	assert.False(t, tod.Matches(time.Date(2024, 3, 4, 7, 31, 0, 0, time.Local)))
	assert.False(t, tod.Matches(time.Date(2024, 3, 4, 19, 30, 0, 0, time.Local)))
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays("mon, Wed,,MON,fri")
	require.NoError(t, err)
	assert.Equal(t, []Weekday{Monday, Wednesday, Friday}, days)

	days, err = ParseWeekdays("")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = ParseWeekdays("Mon,Funday")
	assert.Error(t, err)
}

func TestWeekdayOf(t *testing.T) {
	// 2024-03-04 is a Monday
	monday := time.Date(2024, 3, 4, 12, 0, 0, 0, time.Local)
	for i, want := range AllWeekdays {
		assert.Equal(t, want, WeekdayOf(monday.AddDate(0, 0, i)))
	}

	wd, ok := Sunday.TimeWeekday()
	assert.True(t, ok)
	assert.Equal(t, time.Sunday, wd)
}

func TestAlarmRecordJSON(t *testing.T) {
	rec := AlarmRecord{
		TimeOfDay:  TimeOfDay{Hour: 6, Minute: 5},
		RepeatDays: []Weekday{Monday, Friday},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"time_of_day":"06:05","repeat_days":["Mon","Fri"]}`, string(data))

	var decoded AlarmRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec, decoded)
}

func TestAlarmRecordAcceptsLegacyKey(t *testing.T) {
	var rec AlarmRecord
	require.NoError(t, json.Unmarshal([]byte(`{"alarm_time":"21:15"}`), &rec))

	assert.Equal(t, TimeOfDay{Hour: 21, Minute: 15}, rec.TimeOfDay)
	assert.NotNil(t, rec.RepeatDays)
	assert.Empty(t, rec.RepeatDays)
}

func TestAlarmRecordRejectsBadInput(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"time_of_day":"7:00"}`,
		`{"time_of_day":700}`,
		`{"time_of_day":"07:00","repeat_days":["Someday"]}`,
	}

	for _, input := range inputs {
		var rec AlarmRecord
		assert.Error(t, json.Unmarshal([]byte(input), &rec), input)
	}
}

func TestAlarmRecordYAML(t *testing.T) {
	rec := AlarmRecord{TimeOfDay: TimeOfDay{Hour: 8}, RepeatDays: []Weekday{Saturday}}

	data, err := yaml.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), "time_of_day:")
	assert.Contains(t, string(data), "08:00")
	assert.Contains(t, string(data), "- Sat")
}

func TestDaysLabel(t *testing.T) {
	assert.Equal(t, "Once", AlarmRecord{}.DaysLabel())
	assert.Equal(t, "Mon Thu", AlarmRecord{RepeatDays: []Weekday{Monday, Thursday}}.DaysLabel())
}

func TestDate(t *testing.T) {
	d := DateOf(time.Date(2024, 2, 29, 23, 59, 0, 0, time.Local))

	assert.Equal(t, "2024-02-29", d.String())
	assert.False(t, d.IsZero())
	assert.True(t, Date{}.IsZero())
}
