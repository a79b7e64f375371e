package calendar

import (
	"fmt"
	"io"
	"log"
	"slices"
	"time"

	"github.com/borgmon/deskclock/pkg/models"
	"github.com/emersion/go-ical"
)

// ImportICS reads alarms from an iCalendar stream. Each VEVENT becomes one alarm at the
// time of day of its DTSTART; a weekly BYDAY rule becomes the repeat days.
func ImportICS(r io.Reader) ([]models.AlarmRecord, error) {
	decoder := ical.NewDecoder(r)
	records := []models.AlarmRecord{}

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, event := range cal.Events() {
			rec, err := parseEvent(event.Component)
			if err != nil {
				log.Printf("Skipping calendar event: %v", err)
				continue
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

func parseEvent(comp *ical.Component) (models.AlarmRecord, error) {
	rec := models.AlarmRecord{RepeatDays: []models.Weekday{}}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return rec, fmt.Errorf("event has no DTSTART")
	}

	start, err := parseDateTimeProperty(startProp)
	if err != nil {
		return rec, err
	}
	rec.TimeOfDay = models.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()}

	rule, err := comp.Props.RecurrenceRule()
	if err != nil {
		return rec, fmt.Errorf("invalid RRULE: %w", err)
	}
	if rule != nil {
		for _, wd := range rule.Byweekday {
			if day, ok := weekdayFromRRule(wd); ok && !slices.Contains(rec.RepeatDays, day) {
				rec.RepeatDays = append(rec.RepeatDays, day)
			}
		}
	}

	return rec, nil
}

func parseDateTimeProperty(prop *ical.Prop) (time.Time, error) {
	// First try the standard DateTime method with local timezone
	if t, err := prop.DateTime(time.Local); err == nil {
		return t.In(time.Local), nil
	}

	value := prop.Value

	formats := []string{
		"20060102T150405",     // Basic format: YYYYMMDDTHHMMSS
		"20060102T150405Z",    // UTC format
		time.RFC3339,          // Standard RFC3339
		"2006-01-02T15:04:05", // ISO 8601 without timezone
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", value)
}
