package event

import (
	"fmt"
	"time"

	"github.com/planora/planora/internal/utils"
	"github.com/teambition/rrule-go"
)

const (
	// DefaultMaxOccurrences bounds expansion of pathological or huge ranges.
	DefaultMaxOccurrences = 1000
	// DefaultOpenEndedMonths bounds rules with no repeat-until date.
	DefaultOpenEndedMonths = 12
)

// ExpandOptions controls how recurrence expansion is performed.
type ExpandOptions struct {
	// MaxOccurrences is a safety cap on the number of generated events.
	// If zero, DefaultMaxOccurrences is used.
	MaxOccurrences int
	// OpenEndedMonths is the horizon applied to rules without a
	// repeat-until date. If zero, DefaultOpenEndedMonths is used.
	OpenEndedMonths int
}

func (o ExpandOptions) withDefaults() ExpandOptions {
	if o.MaxOccurrences <= 0 {
		o.MaxOccurrences = DefaultMaxOccurrences
	}
	if o.OpenEndedMonths <= 0 {
		o.OpenEndedMonths = DefaultOpenEndedMonths
	}
	return o
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// ExpandRule materializes a weekly recurrence rule into concrete events, one
// per matching weekday from today (inclusive) up to the rule's horizon. The
// horizon is RepeatUntil (inclusive) when set, otherwise today plus
// OpenEndedMonths (exclusive). The result is ordered by start date.
//
// ExpandRule is a pure function of its inputs: callers provide today
// explicitly so expansion stays deterministic and testable.
func ExpandRule(today time.Time, rule RecurrenceRule, title string, opts ExpandOptions) ([]Event, error) {
	opts = opts.withDefaults()

	day := utils.StartOfDay(today)

	var lastDay time.Time
	if rule.RepeatUntil != nil {
		lastDay = utils.StartOfDay(*rule.RepeatUntil)
	} else {
		lastDay = day.AddDate(0, opts.OpenEndedMonths, 0).AddDate(0, 0, -1)
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[rule.DayOfWeek]},
		Dtstart:   combine(day, rule.StartTime),
		Until:     combine(lastDay, rule.StartTime),
	})
	if err != nil {
		return nil, fmt.Errorf("could not build recurrence: %w", err)
	}

	events := make([]Event, 0)
	next := r.Iterator()
	for {
		start, ok := next()
		if !ok {
			break
		}
		// The Until bound already honors RepeatUntil; re-check to be safe.
		if rule.RepeatUntil != nil && utils.StartOfDay(start).After(utils.StartOfDay(*rule.RepeatUntil)) {
			break
		}
		ruleID := rule.ID
		events = append(events, Event{
			Title:     title,
			StartDate: start,
			EndDate:   combine(start, rule.EndTime),
			RuleID:    &ruleID,
		})
		if len(events) >= opts.MaxOccurrences {
			break
		}
	}

	return events, nil
}
