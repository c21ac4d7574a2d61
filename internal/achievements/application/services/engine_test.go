package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/activepause/activepause/internal/achievements/domain"
	sharedDomain "github.com/activepause/activepause/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository with the same atomicity guarantees as
// the real ones: RecordUnlocks inserts under a single lock and skips
// duplicates.
type fakeRepo struct {
	mu       sync.Mutex
	catalog  []domain.Definition
	unlocks  map[uuid.UUID]map[string]time.Time
	failWith error
}

func newFakeRepo(defs []domain.Definition) *fakeRepo {
	return &fakeRepo{
		catalog: defs,
		unlocks: make(map[uuid.UUID]map[string]time.Time),
	}
}

func (r *fakeRepo) SeedCatalog(ctx context.Context, defs []domain.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if len(r.catalog) == 0 {
		r.catalog = defs
	}
	return nil
}

func (r *fakeRepo) Catalog(ctx context.Context) ([]domain.Definition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	return append([]domain.Definition{}, r.catalog...), nil
}

func (r *fakeRepo) UnlockedIDs(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	ids := make(map[string]struct{}, len(r.unlocks[userID]))
	for id := range r.unlocks[userID] {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (r *fakeRepo) RecordUnlocks(ctx context.Context, userID uuid.UUID, achievementIDs []string, unlockedAt time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	if r.unlocks[userID] == nil {
		r.unlocks[userID] = make(map[string]time.Time)
	}
	var inserted []string
	for _, id := range achievementIDs {
		if _, ok := r.unlocks[userID][id]; ok {
			continue
		}
		r.unlocks[userID][id] = unlockedAt
		inserted = append(inserted, id)
	}
	return inserted, nil
}

func (r *fakeRepo) Unlocks(ctx context.Context, userID uuid.UUID) ([]domain.UnlockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var records []domain.UnlockRecord
	for id, at := range r.unlocks[userID] {
		records = append(records, domain.UnlockRecord{UserID: userID, AchievementID: id, UnlockedAt: at})
	}
	return records, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []sharedDomain.DomainEvent
}

func (p *capturingPublisher) PublishDomainEvent(ctx context.Context, event sharedDomain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func TestEngine_Evaluate_FreshUserUnlocksFirstTimeOnly(t *testing.T) {
	repo := newFakeRepo(domain.DefaultCatalog())
	engine := NewEngine(repo, nil, nil)
	ctx := context.Background()

	snapshot := domain.StatsSnapshot{
		TotalSessions:       1,
		CurrentStreak:       1,
		LifetimeSessions:    1,
		EarlySessions:       0,
		WeeklyDaysCompleted: 1,
	}

	newly, err := engine.Evaluate(ctx, uuid.New(), snapshot)
	require.NoError(t, err)
	require.Len(t, newly, 1)
	assert.Equal(t, "first_time", newly[0].ID)
}

func TestEngine_Evaluate_Idempotent(t *testing.T) {
	repo := newFakeRepo(domain.DefaultCatalog())
	engine := NewEngine(repo, nil, nil)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := domain.StatsSnapshot{
		TotalSessions:       2,
		CurrentStreak:       3,
		LifetimeSessions:    10,
		EarlySessions:       1,
		WeeklyDaysCompleted: 3,
	}

	first, err := engine.Evaluate(ctx, userID, snapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := engine.Evaluate(ctx, userID, snapshot)
	require.NoError(t, err)
	assert.Empty(t, second)

	records, err := repo.Unlocks(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, records, len(first))
}

func TestEngine_Evaluate_StreakThreshold(t *testing.T) {
	catalog := []domain.Definition{
		{ID: "daily_streak_3", Name: "3-Day Streak", ConditionType: domain.ConditionDailyStreak, ConditionValue: 3, SortOrder: 1},
	}

	t.Run("below threshold", func(t *testing.T) {
		engine := NewEngine(newFakeRepo(catalog), nil, nil)
		newly, err := engine.Evaluate(context.Background(), uuid.New(), domain.StatsSnapshot{CurrentStreak: 2})
		require.NoError(t, err)
		assert.Empty(t, newly)
	})

	t.Run("at threshold", func(t *testing.T) {
		engine := NewEngine(newFakeRepo(catalog), nil, nil)
		newly, err := engine.Evaluate(context.Background(), uuid.New(), domain.StatsSnapshot{CurrentStreak: 3})
		require.NoError(t, err)
		require.Len(t, newly, 1)
		assert.Equal(t, "daily_streak_3", newly[0].ID)
	})
}

func TestEngine_Evaluate_UnknownConditionTypeNeverUnlocks(t *testing.T) {
	catalog := []domain.Definition{
		{ID: "mystery", Name: "Mystery", ConditionType: "perfect_posture", ConditionValue: 0, SortOrder: 1},
	}
	engine := NewEngine(newFakeRepo(catalog), nil, nil)

	snapshot := domain.StatsSnapshot{
		TotalSessions:    100,
		CurrentStreak:    100,
		LifetimeSessions: 100,
	}

	newly, err := engine.Evaluate(context.Background(), uuid.New(), snapshot)
	require.NoError(t, err)
	assert.Empty(t, newly)
}

func TestEngine_Evaluate_ReturnsCatalogOrder(t *testing.T) {
	repo := newFakeRepo(domain.DefaultCatalog())
	engine := NewEngine(repo, nil, nil)

	snapshot := domain.StatsSnapshot{
		TotalSessions:       5,
		CurrentStreak:       10,
		LifetimeSessions:    200,
		EarlySessions:       2,
		WeeklyDaysCompleted: 7,
	}

	newly, err := engine.Evaluate(context.Background(), uuid.New(), snapshot)
	require.NoError(t, err)
	require.Len(t, newly, 5)

	var ids []string
	for _, def := range newly {
		ids = append(ids, def.ID)
	}
	assert.Equal(t, []string{"first_time", "daily_streak_3", "marathon", "early_bird", "week_complete"}, ids)
}

func TestEngine_Evaluate_ConcurrentSameUserSingleWinner(t *testing.T) {
	repo := newFakeRepo(domain.DefaultCatalog())
	engine := NewEngine(repo, nil, nil)
	userID := uuid.New()

	// Snapshot satisfies exactly one new achievement.
	snapshot := domain.StatsSnapshot{TotalSessions: 1}

	const callers = 8
	results := make(chan int, callers)
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			newly, err := engine.Evaluate(context.Background(), userID, snapshot)
			if err != nil {
				errs <- err
				return
			}
			results <- len(newly)
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	total := 0
	for n := range results {
		total += n
	}
	assert.Equal(t, 1, total, "exactly one caller should report the unlock")

	records, err := repo.Unlocks(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEngine_Evaluate_InvalidSnapshotRejected(t *testing.T) {
	engine := NewEngine(newFakeRepo(domain.DefaultCatalog()), nil, nil)

	_, err := engine.Evaluate(context.Background(), uuid.New(), domain.StatsSnapshot{LifetimeSessions: -1})
	assert.ErrorIs(t, err, domain.ErrNegativeCount)
}

func TestEngine_Evaluate_StorageErrorAborts(t *testing.T) {
	repo := newFakeRepo(domain.DefaultCatalog())
	repo.failWith = domain.ErrStorageUnavailable
	engine := NewEngine(repo, nil, nil)

	_, err := engine.Evaluate(context.Background(), uuid.New(), domain.StatsSnapshot{TotalSessions: 1})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestEngine_Evaluate_PublishesUnlockEvents(t *testing.T) {
	repo := newFakeRepo(domain.DefaultCatalog())
	publisher := &capturingPublisher{}
	engine := NewEngine(repo, publisher, nil)

	_, err := engine.Evaluate(context.Background(), uuid.New(), domain.StatsSnapshot{TotalSessions: 1})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	unlocked, ok := publisher.events[0].(*domain.AchievementUnlocked)
	require.True(t, ok)
	assert.Equal(t, "first_time", unlocked.AchievementID)
	assert.Equal(t, "achievements.achievement.unlocked", unlocked.RoutingKey())
}

func TestEngine_SeedDefaults_Idempotent(t *testing.T) {
	repo := newFakeRepo(nil)
	engine := NewEngine(repo, nil, nil)
	ctx := context.Background()

	require.NoError(t, engine.SeedDefaults(ctx))
	require.NoError(t, engine.SeedDefaults(ctx))

	catalog, err := repo.Catalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 5)
}
