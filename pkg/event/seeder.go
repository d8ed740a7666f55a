package event

import (
	"context"
	"time"

	"github.com/planora/planora/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Seeder populates an empty store with a few example events on startup so a
// fresh instance has data to play with. It writes through the repository
// directly, skipping conflict checks.
type Seeder struct {
	repo  Repository
	clock utils.Clock
}

// Seed generates only a handful of occurrences per rule for quick setup.
var seedExpandOpts = ExpandOptions{MaxOccurrences: 5, OpenEndedMonths: 3}

func NewSeeder(repo Repository) *Seeder {
	return &Seeder{repo: repo, clock: &utils.SystemClock{}}
}

// Seed is idempotent: it does nothing when the store already holds any event.
func (s *Seeder) Seed(ctx context.Context) error {
	count, err := s.repo.CountEvents(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("store already populated, skipping seed data")
		return nil
	}

	now := s.clock.Now()
	kickoff := now.AddDate(0, 0, 3)

	if err := s.addSingleEvent(ctx, "Project Kickoff",
		at(kickoff, 10, 0), at(kickoff, 11, 30)); err != nil {
		return err
	}

	standupUntil := utils.StartOfDay(now).AddDate(0, 3, 0)
	if err := s.addCyclicEvent(ctx, "Weekly Team Standup",
		time.Monday, clock(9, 0), clock(9, 30), &standupUntil); err != nil {
		return err
	}

	// Open-ended rule, capped by the expander.
	if err := s.addCyclicEvent(ctx, "Lunch Break Conflict",
		time.Friday, clock(12, 0), clock(13, 0), nil); err != nil {
		return err
	}

	total, err := s.repo.CountEvents(ctx)
	if err != nil {
		return err
	}
	log.Infof("seeded example data, total events generated: %d", total)
	return nil
}

func (s *Seeder) addSingleEvent(ctx context.Context, title string, start, end time.Time) error {
	_, err := s.repo.SaveEvent(ctx, Event{Title: title, StartDate: start, EndDate: end})
	return err
}

func (s *Seeder) addCyclicEvent(ctx context.Context, title string, day time.Weekday, startTime, endTime time.Time, repeatUntil *time.Time) error {
	rule, err := s.repo.SaveRecurrenceRule(ctx, RecurrenceRule{
		DayOfWeek:   day,
		StartTime:   startTime,
		EndTime:     endTime,
		RepeatUntil: repeatUntil,
	})
	if err != nil {
		return err
	}

	occurrences, err := ExpandRule(s.clock.Now(), rule, title, seedExpandOpts)
	if err != nil {
		return err
	}
	_, err = s.repo.SaveAllEvents(ctx, occurrences)
	return err
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func clock(hour, minute int) time.Time {
	return time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)
}
