package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/activepause/activepause/internal/achievements/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAchievementRepo struct {
	mock.Mock
}

func (m *mockAchievementRepo) SeedCatalog(ctx context.Context, defs []domain.Definition) error {
	args := m.Called(ctx, defs)
	return args.Error(0)
}

func (m *mockAchievementRepo) Catalog(ctx context.Context) ([]domain.Definition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Definition), args.Error(1)
}

func (m *mockAchievementRepo) UnlockedIDs(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *mockAchievementRepo) RecordUnlocks(ctx context.Context, userID uuid.UUID, achievementIDs []string, unlockedAt time.Time) ([]string, error) {
	args := m.Called(ctx, userID, achievementIDs, unlockedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockAchievementRepo) Unlocks(ctx context.Context, userID uuid.UUID) ([]domain.UnlockRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnlockRecord), args.Error(1)
}

func TestListAchievementsHandler_Handle(t *testing.T) {
	userID := uuid.New()
	catalog := domain.DefaultCatalog()

	t.Run("annotates unlock status", func(t *testing.T) {
		repo := new(mockAchievementRepo)
		handler := NewListAchievementsHandler(repo)

		unlockedAt := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
		repo.On("Catalog", mock.Anything).Return(catalog, nil)
		repo.On("Unlocks", mock.Anything, userID).Return([]domain.UnlockRecord{
			{UserID: userID, AchievementID: "first_time", UnlockedAt: unlockedAt},
		}, nil)

		result, err := handler.Handle(context.Background(), ListAchievementsQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, result, len(catalog))
		assert.Equal(t, "first_time", result[0].ID)
		assert.True(t, result[0].Unlocked)
		require.NotNil(t, result[0].UnlockedAt)
		assert.Equal(t, unlockedAt, *result[0].UnlockedAt)

		for _, dto := range result[1:] {
			assert.False(t, dto.Unlocked)
			assert.Nil(t, dto.UnlockedAt)
		}

		repo.AssertExpectations(t)
	})

	t.Run("only unlocked filter", func(t *testing.T) {
		repo := new(mockAchievementRepo)
		handler := NewListAchievementsHandler(repo)

		repo.On("Catalog", mock.Anything).Return(catalog, nil)
		repo.On("Unlocks", mock.Anything, userID).Return([]domain.UnlockRecord{
			{UserID: userID, AchievementID: "marathon", UnlockedAt: time.Now()},
		}, nil)

		result, err := handler.Handle(context.Background(), ListAchievementsQuery{
			UserID:       userID,
			OnlyUnlocked: true,
		})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "marathon", result[0].ID)

		repo.AssertExpectations(t)
	})

	t.Run("preserves catalog order", func(t *testing.T) {
		repo := new(mockAchievementRepo)
		handler := NewListAchievementsHandler(repo)

		repo.On("Catalog", mock.Anything).Return(catalog, nil)
		repo.On("Unlocks", mock.Anything, userID).Return([]domain.UnlockRecord{}, nil)

		result, err := handler.Handle(context.Background(), ListAchievementsQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, result, len(catalog))
		for i, def := range catalog {
			assert.Equal(t, def.ID, result[i].ID)
		}

		repo.AssertExpectations(t)
	})

	t.Run("fails when repository error", func(t *testing.T) {
		repo := new(mockAchievementRepo)
		handler := NewListAchievementsHandler(repo)

		repo.On("Catalog", mock.Anything).Return(nil, errors.New("database error"))

		result, err := handler.Handle(context.Background(), ListAchievementsQuery{UserID: userID})

		assert.Error(t, err)
		assert.Nil(t, result)

		repo.AssertExpectations(t)
	})
}
