package event

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *sql.DB

func TestMain(m *testing.M) {
	container, open := test_utils.TestWithDB()
	db = open()
	code := m.Run()
	db.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl) {
	t.Helper()
	require.NoError(t, test_utils.CleanupTables(db))
	return context.Background(), NewRepository(db)
}

func TestRepositoryImpl_SaveEvent(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	day := localDate(2025, time.November, 10)

	// when
	saved, err := repo.SaveEvent(ctx, Event{Title: "Kickoff", StartDate: at(day, 10, 0), EndDate: at(day, 11, 30)})
	require.NoError(t, err)

	// then
	assert.NotEqual(t, uuid.Nil, saved.ID)
	stored, err := repo.FindEventByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Kickoff", stored.Title)
	assert.Equal(t, at(day, 10, 0).UnixMilli(), stored.StartDate.UnixMilli())
	assert.Equal(t, at(day, 11, 30).UnixMilli(), stored.EndDate.UnixMilli())
	assert.Nil(t, stored.RuleID)
}

func TestRepositoryImpl_SaveEvent_OverwritesExistingRecord(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	day := localDate(2025, time.November, 10)
	saved, err := repo.SaveEvent(ctx, Event{Title: "Kickoff", StartDate: at(day, 10, 0), EndDate: at(day, 11, 0)})
	require.NoError(t, err)

	// when
	saved.Title = "Kickoff (moved)"
	saved.StartDate = at(day, 14, 0)
	saved.EndDate = at(day, 15, 0)
	_, err = repo.SaveEvent(ctx, saved)
	require.NoError(t, err)

	// then
	stored, err := repo.FindEventByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Kickoff (moved)", stored.Title)
	assert.Equal(t, at(day, 14, 0).UnixMilli(), stored.StartDate.UnixMilli())

	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepositoryImpl_FindEventByID_ReturnsNilWhenAbsent(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	stored, err := repo.FindEventByID(ctx, uuid.New())

	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRepositoryImpl_SaveAllEvents_PreservesOrder(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	day := localDate(2025, time.November, 10)
	events := []Event{
		{Title: "First", StartDate: at(day, 9, 0), EndDate: at(day, 10, 0)},
		{Title: "Second", StartDate: at(day, 10, 0), EndDate: at(day, 11, 0)},
		{Title: "Third", StartDate: at(day, 11, 0), EndDate: at(day, 12, 0)},
	}

	// when
	saved, err := repo.SaveAllEvents(ctx, events)
	require.NoError(t, err)

	// then
	require.Len(t, saved, 3)
	assert.Equal(t, "First", saved[0].Title)
	assert.Equal(t, "Second", saved[1].Title)
	assert.Equal(t, "Third", saved[2].Title)
	for _, e := range saved {
		assert.NotEqual(t, uuid.Nil, e.ID)
	}

	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepositoryImpl_FindOverlappingEvents(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	day := localDate(2025, time.November, 10)
	stored, err := repo.SaveEvent(ctx, Event{Title: "Kickoff", StartDate: at(day, 10, 0), EndDate: at(day, 11, 30)})
	require.NoError(t, err)

	t.Run("detects a half-open overlap", func(t *testing.T) {
		overlapping, err := repo.FindOverlappingEvents(ctx, at(day, 11, 0), at(day, 12, 0), nil)
		require.NoError(t, err)
		require.Len(t, overlapping, 1)
		assert.Equal(t, stored.ID, overlapping[0].ID)
	})

	t.Run("boundary touch is not an overlap", func(t *testing.T) {
		overlapping, err := repo.FindOverlappingEvents(ctx, at(day, 11, 30), at(day, 12, 30), nil)
		require.NoError(t, err)
		assert.Empty(t, overlapping)

		overlapping, err = repo.FindOverlappingEvents(ctx, at(day, 9, 0), at(day, 10, 0), nil)
		require.NoError(t, err)
		assert.Empty(t, overlapping)
	})

	t.Run("excluded id is left out", func(t *testing.T) {
		overlapping, err := repo.FindOverlappingEvents(ctx, at(day, 10, 30), at(day, 11, 0), &stored.ID)
		require.NoError(t, err)
		assert.Empty(t, overlapping)
	})
}

func TestRepositoryImpl_FindEventsStartingBetween(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	day := localDate(2025, time.November, 10)
	_, err := repo.SaveAllEvents(ctx, []Event{
		{Title: "Before", StartDate: at(day.AddDate(0, 0, -1), 10, 0), EndDate: at(day.AddDate(0, 0, -1), 11, 0)},
		{Title: "Evening", StartDate: at(day, 18, 0), EndDate: at(day, 19, 0)},
		{Title: "Morning", StartDate: at(day, 9, 0), EndDate: at(day, 10, 0)},
		{Title: "After", StartDate: at(day.AddDate(0, 0, 1), 10, 0), EndDate: at(day.AddDate(0, 0, 1), 11, 0)},
	})
	require.NoError(t, err)

	// when
	events, err := repo.FindEventsStartingBetween(ctx, at(day, 0, 0), at(day, 23, 59))
	require.NoError(t, err)

	// then: both bounds inclusive, ordered by start date
	require.Len(t, events, 2)
	assert.Equal(t, "Morning", events[0].Title)
	assert.Equal(t, "Evening", events[1].Title)
}

func TestRepositoryImpl_RecurrenceRules(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	t.Run("round-trips a bounded rule", func(t *testing.T) {
		until := localDate(2025, time.December, 31)
		saved, err := repo.SaveRecurrenceRule(ctx, RecurrenceRule{
			DayOfWeek:   time.Monday,
			StartTime:   clockTime(9, 0),
			EndTime:     clockTime(9, 30),
			RepeatUntil: &until,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, saved.ID)

		stored, err := repo.FindRecurrenceRuleByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, time.Monday, stored.DayOfWeek)
		assert.Equal(t, "09:00:00", stored.StartTime.Format(timeOfDayLayout))
		assert.Equal(t, "09:30:00", stored.EndTime.Format(timeOfDayLayout))
		require.NotNil(t, stored.RepeatUntil)
		assert.Equal(t, "2025-12-31", stored.RepeatUntil.Format(dateLayout))
	})

	t.Run("round-trips an open-ended rule", func(t *testing.T) {
		saved, err := repo.SaveRecurrenceRule(ctx, RecurrenceRule{
			DayOfWeek: time.Friday,
			StartTime: clockTime(12, 0),
			EndTime:   clockTime(13, 0),
		})
		require.NoError(t, err)

		stored, err := repo.FindRecurrenceRuleByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Nil(t, stored.RepeatUntil)
	})

	t.Run("returns nil for an unknown rule id", func(t *testing.T) {
		stored, err := repo.FindRecurrenceRuleByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

func TestRepositoryImpl_WithTransaction_RollsBackOnError(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	day := localDate(2025, time.November, 10)

	// when
	err := repo.WithTransaction(ctx, func(txRepo Repository) error {
		_, err := txRepo.SaveEvent(ctx, Event{Title: "Doomed", StartDate: at(day, 10, 0), EndDate: at(day, 11, 0)})
		require.NoError(t, err)
		return assert.AnError
	})

	// then
	assert.ErrorIs(t, err, assert.AnError)
	count, countErr := repo.CountEvents(ctx)
	require.NoError(t, countErr)
	assert.Equal(t, 0, count)
}

func TestRepositoryImpl_SaveEvent_KeepsRuleReference(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	day := localDate(2025, time.November, 10)
	rule, err := repo.SaveRecurrenceRule(ctx, RecurrenceRule{
		DayOfWeek: time.Monday, StartTime: clockTime(9, 0), EndTime: clockTime(9, 30),
	})
	require.NoError(t, err)

	// when
	saved, err := repo.SaveEvent(ctx, Event{
		Title: "Standup", StartDate: at(day, 9, 0), EndDate: at(day, 9, 30), RuleID: &rule.ID,
	})
	require.NoError(t, err)

	// then
	stored, err := repo.FindEventByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.RuleID)
	assert.Equal(t, rule.ID, *stored.RuleID)
}
