package calendar

import (
	"fmt"
	"time"

	"github.com/borgmon/deskclock/pkg/models"
	"github.com/teambition/rrule-go"
)

var weekdayToRRule = map[models.Weekday]rrule.Weekday{
	models.Monday:    rrule.MO,
	models.Tuesday:   rrule.TU,
	models.Wednesday: rrule.WE,
	models.Thursday:  rrule.TH,
	models.Friday:    rrule.FR,
	models.Saturday:  rrule.SA,
	models.Sunday:    rrule.SU,
}

// RecurrenceFor builds the recurrence rule an alarm actually follows, anchored on the
// calendar date of from. Without day filtering every alarm repeats daily.
func RecurrenceFor(rec models.AlarmRecord, from time.Time, honorDays bool) rrule.ROption {
	option := rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: rec.TimeOfDay.On(from),
	}

	if honorDays && len(rec.RepeatDays) > 0 {
		option.Freq = rrule.WEEKLY
		for _, day := range rec.RepeatDays {
			if wd, ok := weekdayToRRule[day]; ok {
				option.Byweekday = append(option.Byweekday, wd)
			}
		}
	}

	return option
}

// NextOccurrence returns the first time at or after the current minute the alarm is scheduled for
func NextOccurrence(rec models.AlarmRecord, now time.Time, honorDays bool) (time.Time, error) {
	option := RecurrenceFor(rec, now, honorDays)

	r, err := rrule.NewRRule(option)
	if err != nil {
		return time.Time{}, fmt.Errorf("build recurrence for %s: %w", rec.TimeOfDay, err)
	}

	next := r.After(models.RoundToMinute(now), true)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("no upcoming occurrence for %s", rec.TimeOfDay)
	}
	return next, nil
}

// weekdayFromRRule maps an rrule weekday back to a day tag
func weekdayFromRRule(wd rrule.Weekday) (models.Weekday, bool) {
	for tag, candidate := range weekdayToRRule {
		if candidate.Day() == wd.Day() {
			return tag, true
		}
	}
	return "", false
}
