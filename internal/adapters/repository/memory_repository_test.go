package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

func TestInMemoryWorkoutRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryWorkoutRepository()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"w-old", "w-mid", "w-new"} {
		require.NoError(t, repo.Create(ctx, &domain.Workout{ID: id, UserID: "u1", CreatedAt: now.AddDate(0, 0, i-2)}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Workout{ID: "w-other", UserID: "u2", CreatedAt: now}))

	t.Run("Lists the window most recent first", func(t *testing.T) {
		list, err := repo.ListByUserID(ctx, "u1", now.AddDate(0, 0, -1), now)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "w-new", list[0].ID)
		assert.Equal(t, "w-mid", list[1].ID)
	})

	t.Run("Returned values are copies", func(t *testing.T) {
		w, err := repo.GetByID(ctx, "w-new")
		require.NoError(t, err)
		w.Completed = true

		again, _ := repo.GetByID(ctx, "w-new")
		assert.False(t, again.Completed)
	})

	t.Run("Delete checks ownership", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, "w-old", "u2"), domain.ErrWorkoutNotFound)
		require.NoError(t, repo.Delete(ctx, "w-old", "u1"))

		n, err := repo.CountByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestInMemoryProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryProfileRepository()

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	require.NoError(t, repo.Upsert(ctx, &domain.Profile{UserID: "u1", LongestStreak: 5}))
	require.NoError(t, repo.UpdateLongestStreak(ctx, "u1", 3))
	require.NoError(t, repo.Upsert(ctx, &domain.Profile{UserID: "u1", DisplayName: "Sam"}))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.LongestStreak)
	assert.Equal(t, "Sam", p.DisplayName)

	require.NoError(t, repo.SetGoal(ctx, &domain.Goal{ID: "g1", UserID: "u1", Active: true}))
	require.NoError(t, repo.SetGoal(ctx, &domain.Goal{ID: "g2", UserID: "u1", Active: true}))

	g, err := repo.ActiveGoal(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "g2", g.ID)
}

func TestInMemoryUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "1", Email: "a@kanso.app"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "2", Email: "a@kanso.app"}), domain.ErrEmailAlreadyExists)
}
