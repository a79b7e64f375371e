package calendar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/borgmon/deskclock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportICS(t *testing.T) {
	var buf bytes.Buffer
	records := []models.AlarmRecord{
		record(7, 30, models.Monday, models.Wednesday),
		record(22, 0),
	}

	require.NoError(t, ExportICS(&buf, records, monday, true))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VALARM"))
	assert.Contains(t, out, "SUMMARY:Alarm 07:30")
	assert.Contains(t, out, "DTSTART:20240304T073000")
	assert.Contains(t, out, "FREQ=WEEKLY")
	assert.Contains(t, out, "FREQ=DAILY")
	assert.Contains(t, out, "ACTION:DISPLAY")
}

func TestExportImportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	records := []models.AlarmRecord{
		record(7, 30, models.Monday, models.Wednesday),
		record(22, 0),
	}
	require.NoError(t, ExportICS(&buf, records, monday, true))

	imported, err := ImportICS(&buf)
	require.NoError(t, err)

	require.Len(t, imported, 2)
	assert.Equal(t, models.TimeOfDay{Hour: 7, Minute: 30}, imported[0].TimeOfDay)
	assert.Equal(t, []models.Weekday{models.Monday, models.Wednesday}, imported[0].RepeatDays)
	assert.Equal(t, models.TimeOfDay{Hour: 22}, imported[1].TimeOfDay)
	assert.Empty(t, imported[1].RepeatDays)
}

func TestImportICSSkipsEventsWithoutStart(t *testing.T) {
	input := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"BEGIN:VEVENT",
		"UID:one",
		"DTSTAMP:20240304T000000Z",
		"SUMMARY:No start",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:two",
		"DTSTAMP:20240304T000000Z",
		"DTSTART:20240305T061500",
		"SUMMARY:Wake",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	imported, err := ImportICS(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, imported, 1)
	assert.Equal(t, models.TimeOfDay{Hour: 6, Minute: 15}, imported[0].TimeOfDay)
}
