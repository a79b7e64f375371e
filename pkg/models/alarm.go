package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is a three-letter day tag as stored in the alarms file
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// AllWeekdays lists the day tags in display order (Mon..Sun)
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayToTime = map[Weekday]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// ParseWeekday accepts a day tag case-insensitively ("mon", "Mon", "MON")
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for _, d := range AllWeekdays {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid weekday %q: expected one of Mon, Tue, Wed, Thu, Fri, Sat, Sun", s)
}

// ParseWeekdays parses a comma-separated list of day tags, skipping empty parts and duplicates
func ParseWeekdays(list string) ([]Weekday, error) {
	days := []Weekday{}
	seen := make(map[Weekday]bool)

	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		day, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		if !seen[day] {
			days = append(days, day)
			seen[day] = true
		}
	}

	return days, nil
}

// TimeWeekday converts the tag to a time.Weekday
func (d Weekday) TimeWeekday() (time.Weekday, bool) {
	wd, ok := weekdayToTime[d]
	return wd, ok
}

// WeekdayOf returns the day tag for t
func WeekdayOf(t time.Time) Weekday {
	for tag, wd := range weekdayToTime {
		if wd == t.Weekday() {
			return tag
		}
	}
	return ""
}

// TimeOfDay is a wall-clock hour and minute
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict "HH:MM" string (24 hour clock)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}

	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String formats the time as "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Matches reports whether now, truncated to the minute, falls on this time of day
func (t TimeOfDay) Matches(now time.Time) bool {
	now = RoundToMinute(now)
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}

// On returns the instant this time of day occurs on the calendar date of day
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// MarshalJSON encodes the time as "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// MarshalYAML encodes the time as "HH:MM"
func (t TimeOfDay) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalJSON decodes a "HH:MM" string
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date is a calendar date without a time component
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AlarmRecord is the persisted form of an alarm
type AlarmRecord struct {
	TimeOfDay  TimeOfDay `json:"time_of_day" yaml:"time_of_day"`
	RepeatDays []Weekday `json:"repeat_days" yaml:"repeat_days"`
}

// UnmarshalJSON also accepts the older "alarm_time" key
func (r *AlarmRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		TimeOfDay  *TimeOfDay `json:"time_of_day"`
		AlarmTime  *TimeOfDay `json:"alarm_time"`
		RepeatDays []string   `json:"repeat_days"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.TimeOfDay != nil:
		r.TimeOfDay = *raw.TimeOfDay
	case raw.AlarmTime != nil:
		r.TimeOfDay = *raw.AlarmTime
	default:
		return fmt.Errorf("alarm record has no time_of_day")
	}

	r.RepeatDays = make([]Weekday, 0, len(raw.RepeatDays))
	for _, tag := range raw.RepeatDays {
		day, err := ParseWeekday(tag)
		if err != nil {
			return err
		}
		r.RepeatDays = append(r.RepeatDays, day)
	}

	return nil
}

// DaysLabel renders the repeat days for display, "Once" when none are selected
func (r AlarmRecord) DaysLabel() string {
	if len(r.RepeatDays) == 0 {
		return "Once"
	}
	tags := make([]string, len(r.RepeatDays))
	for i, d := range r.RepeatDays {
		tags[i] = string(d)
	}
	return strings.Join(tags, " ")
}

// RoundToMinute rounds a time down to the nearest minute
func RoundToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
