package event

import (
	"context"
	"testing"
	"time"

	"github.com/planora/planora/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestSeeder(t *testing.T) {
	ctx := context.Background()
	now := localDate(2025, time.November, 5)

	t.Run("populates an empty store with example data", func(t *testing.T) {
		repo := NewStubRepository()
		seeder := &Seeder{repo: repo, clock: &utils.MockClock{FixedNow: now}}

		err := seeder.Seed(ctx)

		assert.NoError(t, err)
		assert.Len(t, repo.Rules, 2)
		// One single event plus at most five occurrences per rule.
		assert.Greater(t, len(repo.Events), 1)
		assert.LessOrEqual(t, len(repo.Events), 11)

		singles := 0
		for _, e := range repo.Events {
			if !e.IsRecurring() {
				singles++
			}
		}
		assert.Equal(t, 1, singles)
	})

	t.Run("does nothing when the store already holds events", func(t *testing.T) {
		repo := NewStubRepository()
		_, err := repo.SaveEvent(ctx, Event{Title: "Existing", StartDate: now, EndDate: now.Add(time.Hour)})
		assert.NoError(t, err)
		seeder := &Seeder{repo: repo, clock: &utils.MockClock{FixedNow: now}}

		err = seeder.Seed(ctx)

		assert.NoError(t, err)
		assert.Len(t, repo.Events, 1)
		assert.Empty(t, repo.Rules)
	})
}
