package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Service is the scheduling workflow: validation, recurrence expansion and
// conflict checking in front of the interval store.
type Service interface {
	CreateSingleEvent(ctx context.Context, title string, start, end time.Time) (Event, error)
	CreateCyclicEvent(ctx context.Context, title string, rule RecurrenceRule) ([]Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, title string, start, end time.Time) (Event, error)
	GetEventsForDate(ctx context.Context, date time.Time) ([]Event, error)
	FindAll(ctx context.Context) ([]Event, error)
}

type ServiceImpl struct {
	repo       Repository
	clock      utils.Clock
	expandOpts ExpandOptions
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: &utils.SystemClock{}, expandOpts: ExpandOptions{}}
}

// CreateSingleEvent persists a one-off event after checking its interval
// against every stored event. Check and save run in one transaction.
func (s *ServiceImpl) CreateSingleEvent(ctx context.Context, title string, start, end time.Time) (Event, error) {
	if err := validateInterval(start, end); err != nil {
		return Event{}, err
	}

	var saved Event
	err := s.repo.WithTransaction(ctx, func(repo Repository) error {
		if err := checkForConflict(ctx, repo, start, end, nil); err != nil {
			return err
		}
		var err error
		saved, err = repo.SaveEvent(ctx, Event{Title: title, StartDate: start, EndDate: end})
		return err
	})
	if err != nil {
		return Event{}, err
	}

	log.Debugf("created single event %s (%s)", saved.ID, saved.Title)
	return saved, nil
}

// CreateCyclicEvent persists the recurrence rule, expands it into concrete
// occurrences from today onward, and saves them all once every occurrence has
// cleared the conflict check. On conflict no occurrence is written, but the
// rule itself stays persisted.
func (s *ServiceImpl) CreateCyclicEvent(ctx context.Context, title string, rule RecurrenceRule) ([]Event, error) {
	if err := validateRule(rule); err != nil {
		return nil, err
	}

	savedRule, err := s.repo.SaveRecurrenceRule(ctx, rule)
	if err != nil {
		return nil, err
	}

	occurrences, err := ExpandRule(s.clock.Now(), savedRule, title, s.expandOpts)
	if err != nil {
		return nil, err
	}

	var saved []Event
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		for _, occ := range occurrences {
			if err := checkForConflict(ctx, repo, occ.StartDate, occ.EndDate, nil); err != nil {
				return err
			}
		}
		var err error
		saved, err = repo.SaveAllEvents(ctx, occurrences)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("created %d occurrences for rule %s (%s)", len(saved), savedRule.ID, title)
	return saved, nil
}

// UpdateEvent overwrites title, start and end of a single event. Occurrences
// generated from a recurrence rule cannot be updated through this path. The
// updated interval is conflict-checked with the event itself excluded, so an
// event may keep overlapping its own previous slot.
func (s *ServiceImpl) UpdateEvent(ctx context.Context, id uuid.UUID, title string, start, end time.Time) (Event, error) {
	if err := validateInterval(start, end); err != nil {
		return Event{}, err
	}

	var updated Event
	err := s.repo.WithTransaction(ctx, func(repo Repository) error {
		existing, err := repo.FindEventByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		if existing.IsRecurring() {
			return ErrRecurringEventUpdate
		}

		if err := checkForConflict(ctx, repo, start, end, &id); err != nil {
			return err
		}

		existing.Title = title
		existing.StartDate = start
		existing.EndDate = end
		updated, err = repo.SaveEvent(ctx, *existing)
		return err
	})
	if err != nil {
		return Event{}, err
	}

	return updated, nil
}

// GetEventsForDate returns the events whose start timestamp falls within the
// given calendar day, both bounds inclusive.
func (s *ServiceImpl) GetEventsForDate(ctx context.Context, date time.Time) ([]Event, error) {
	return s.repo.FindEventsStartingBetween(ctx, utils.StartOfDay(date), utils.EndOfDay(date))
}

func (s *ServiceImpl) FindAll(ctx context.Context) ([]Event, error) {
	return s.repo.FindAllEvents(ctx)
}

// checkForConflict fails with ErrScheduleConflict when any stored event
// overlaps [start, end), not counting the event identified by excludeID.
func checkForConflict(ctx context.Context, repo Repository, start, end time.Time, excludeID *uuid.UUID) error {
	conflicts, err := repo.FindOverlappingEvents(ctx, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		log.Debugf("interval [%s, %s) conflicts with %d stored event(s)", start, end, len(conflicts))
		return ErrScheduleConflict
	}
	return nil
}

func validateInterval(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}
	return nil
}

func validateRule(rule RecurrenceRule) error {
	if !rule.EndTime.After(rule.StartTime) {
		return fmt.Errorf("%w: rule end time must be after start time", ErrValidation)
	}
	if FormatDayOfWeek(rule.DayOfWeek) == "" {
		return fmt.Errorf("%w: unknown day of week", ErrValidation)
	}
	return nil
}
