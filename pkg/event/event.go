package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrScheduleConflict signals a half-open interval overlap with a stored event.
	ErrScheduleConflict = errors.New("schedule conflict detected")
	// ErrEventNotFound signals that the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrRecurringEventUpdate signals an update attempt on a rule-generated occurrence.
	ErrRecurringEventUpdate = errors.New("cannot update a recurring event using this method")
	// ErrValidation wraps rejected caller input.
	ErrValidation = errors.New("validation failed")
)

// Event is a single calendar entry. RuleID is set only for occurrences
// generated from a RecurrenceRule.
type Event struct {
	ID        uuid.UUID
	Title     string
	StartDate time.Time
	EndDate   time.Time
	RuleID    *uuid.UUID
}

// IsRecurring reports whether the event was generated from a recurrence rule.
func (e Event) IsRecurring() bool {
	return e.RuleID != nil
}

// RecurrenceRule describes a weekly repetition: every DayOfWeek between
// StartTime and EndTime, up to and including RepeatUntil. A nil RepeatUntil
// means open-ended, bounded by the expander's policy horizon.
// StartTime and EndTime carry only the clock part; their date part is ignored.
type RecurrenceRule struct {
	ID          uuid.UUID
	DayOfWeek   time.Weekday
	StartTime   time.Time
	EndTime     time.Time
	RepeatUntil *time.Time
}

var dayOfWeekNames = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

// ParseDayOfWeek maps a weekday symbol such as "MONDAY" to a time.Weekday.
func ParseDayOfWeek(s string) (time.Weekday, error) {
	day, ok := dayOfWeekNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown day of week %q", ErrValidation, s)
	}
	return day, nil
}

// FormatDayOfWeek is the inverse of ParseDayOfWeek.
func FormatDayOfWeek(day time.Weekday) string {
	for name, d := range dayOfWeekNames {
		if d == day {
			return name
		}
	}
	return ""
}

// combine builds a timestamp from the calendar day of date and the clock
// part of clock, in date's location.
func combine(date time.Time, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), date.Location())
}
