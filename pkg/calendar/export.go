package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/borgmon/deskclock/pkg/models"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const productID = "-//borgmon//deskclock//EN"

// ExportICS writes the alarms as a VCALENDAR with one recurring VEVENT per alarm.
// Each event carries a DISPLAY VALARM at its start.
func ExportICS(w io.Writer, records []models.AlarmRecord, now time.Time, honorDays bool) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, rec := range records {
		cal.Children = append(cal.Children, alarmEvent(rec, now, honorDays))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func alarmEvent(rec models.AlarmRecord, now time.Time, honorDays bool) *ical.Component {
	option := RecurrenceFor(rec, now, honorDays)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.New().String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	// Floating local time: the alarm follows the wall clock wherever the calendar is opened
	event.Props.Set(&ical.Prop{
		Name:   ical.PropDateTimeStart,
		Params: make(ical.Params),
		Value:  option.Dtstart.Format("20060102T150405"),
	})
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("Alarm %s", rec.TimeOfDay))
	event.Props.SetRecurrenceRule(&option)

	reminder := ical.NewComponent(ical.CompAlarm)
	reminder.Props.SetText(ical.PropAction, "DISPLAY")
	reminder.Props.SetText(ical.PropDescription, fmt.Sprintf("Alarm %s", rec.TimeOfDay))
	reminder.Props.Set(&ical.Prop{
		Name:   ical.PropTrigger,
		Params: make(ical.Params),
		Value:  "PT0S",
	})
	event.Children = append(event.Children, reminder)

	return event.Component
}
