package event

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	Events []Event
	Rules  []RecurrenceRule

	// FailSaves makes every write fail, for storage-failure paths.
	FailSaves bool
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	return fn(s)
}

func (s *StubRepository) SaveEvent(ctx context.Context, e Event) (Event, error) {
	if s.FailSaves {
		return Event{}, fmt.Errorf("storage unavailable")
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
		s.Events = append(s.Events, e)
		return e, nil
	}
	for i := range s.Events {
		if s.Events[i].ID == e.ID {
			s.Events[i] = e
			return e, nil
		}
	}
	s.Events = append(s.Events, e)
	return e, nil
}

func (s *StubRepository) SaveAllEvents(ctx context.Context, events []Event) ([]Event, error) {
	saved := make([]Event, 0, len(events))
	for _, e := range events {
		se, err := s.SaveEvent(ctx, e)
		if err != nil {
			return nil, err
		}
		saved = append(saved, se)
	}
	return saved, nil
}

func (s *StubRepository) FindEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	for i := range s.Events {
		if s.Events[i].ID == id {
			e := s.Events[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *StubRepository) FindEventsStartingBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	matches := make([]Event, 0)
	for _, e := range s.Events {
		if !e.StartDate.Before(from) && !e.StartDate.After(to) {
			matches = append(matches, e)
		}
	}
	sortEvents(matches)
	return matches, nil
}

func (s *StubRepository) FindOverlappingEvents(ctx context.Context, start, end time.Time, excludeID *uuid.UUID) ([]Event, error) {
	matches := make([]Event, 0)
	for _, e := range s.Events {
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if e.EndDate.After(start) && e.StartDate.Before(end) {
			matches = append(matches, e)
		}
	}
	sortEvents(matches)
	return matches, nil
}

func (s *StubRepository) FindAllEvents(ctx context.Context) ([]Event, error) {
	all := make([]Event, len(s.Events))
	copy(all, s.Events)
	sortEvents(all)
	return all, nil
}

func (s *StubRepository) CountEvents(ctx context.Context) (int, error) {
	return len(s.Events), nil
}

func (s *StubRepository) SaveRecurrenceRule(ctx context.Context, rule RecurrenceRule) (RecurrenceRule, error) {
	if s.FailSaves {
		return RecurrenceRule{}, fmt.Errorf("storage unavailable")
	}
	rule.ID = uuid.New()
	s.Rules = append(s.Rules, rule)
	return rule, nil
}

func (s *StubRepository) FindRecurrenceRuleByID(ctx context.Context, id uuid.UUID) (*RecurrenceRule, error) {
	for i := range s.Rules {
		if s.Rules[i].ID == id {
			rule := s.Rules[i]
			return &rule, nil
		}
	}
	return nil, nil
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartDate.Equal(events[j].StartDate) {
			return events[i].ID.String() < events[j].ID.String()
		}
		return events[i].StartDate.Before(events[j].StartDate)
	})
}
