package persistence

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/activepause/activepause/internal/sessions/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSessionTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// In-memory SQLite is per connection.
	db.SetMaxOpenConns(1)

	schemaPath := filepath.Join("..", "..", "..", "shared", "infrastructure", "migrations", "sqlite", "000001_initial_schema.up.sql")
	schema, err := os.ReadFile(schemaPath)
	require.NoError(t, err, "Failed to read SQLite schema file")

	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func recordAt(t *testing.T, repo *SQLiteSessionRepository, userID uuid.UUID, startedAt time.Time) {
	t.Helper()
	session, err := domain.NewSession(userID, "neck_stretch", startedAt, 60)
	require.NoError(t, err)
	require.NoError(t, repo.RecordSession(context.Background(), session))
}

func TestSQLiteSessionRepository_Snapshot(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewSQLiteSessionRepository(db, 8)
	userID := uuid.New()

	// Thursday 2026-08-27.
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)

	// Three consecutive days ending today, two sessions today, one early.
	recordAt(t, repo, userID, now.AddDate(0, 0, -2))
	recordAt(t, repo, userID, now.AddDate(0, 0, -1))
	recordAt(t, repo, userID, time.Date(2026, 8, 27, 7, 30, 0, 0, time.UTC))
	recordAt(t, repo, userID, now)

	stats, err := repo.Snapshot(context.Background(), userID, now)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TodaySessions)
	assert.Equal(t, 4, stats.LifetimeSessions)
	assert.Equal(t, 1, stats.EarlySessions)
	assert.Equal(t, 3, stats.CurrentStreak)
	// Tue, Wed, Thu fall in the same ISO week.
	assert.Equal(t, 3, stats.WeekDays)
	assert.Equal(t, 240, stats.TotalSeconds)
}

func TestSQLiteSessionRepository_Snapshot_EmptyHistory(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewSQLiteSessionRepository(db, 8)

	stats, err := repo.Snapshot(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, stats)
}

func TestSQLiteSessionRepository_Snapshot_StreakGap(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewSQLiteSessionRepository(db, 8)
	userID := uuid.New()

	now := time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)

	// A gap two days ago resets the streak.
	recordAt(t, repo, userID, now.AddDate(0, 0, -4))
	recordAt(t, repo, userID, now.AddDate(0, 0, -3))
	recordAt(t, repo, userID, now.AddDate(0, 0, -1))
	recordAt(t, repo, userID, now)

	stats, err := repo.Snapshot(context.Background(), userID, now)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CurrentStreak)
}

func TestSQLiteSessionRepository_Snapshot_StreakSurvivesQuietMorning(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewSQLiteSessionRepository(db, 8)
	userID := uuid.New()

	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

	// No session yet today; yesterday and the day before still count.
	recordAt(t, repo, userID, now.AddDate(0, 0, -2))
	recordAt(t, repo, userID, now.AddDate(0, 0, -1))

	stats, err := repo.Snapshot(context.Background(), userID, now)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TodaySessions)
	assert.Equal(t, 2, stats.CurrentStreak)
}

func TestSQLiteSessionRepository_Snapshot_WeekBoundary(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewSQLiteSessionRepository(db, 8)
	userID := uuid.New()

	// Monday 2026-08-24 starts the ISO week.
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	recordAt(t, repo, userID, now)
	// Sunday of the previous week does not count.
	recordAt(t, repo, userID, now.AddDate(0, 0, -1))

	stats, err := repo.Snapshot(context.Background(), userID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.WeekDays)
}

func TestSQLiteSessionRepository_IncompleteSessionNotAggregated(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewSQLiteSessionRepository(db, 8)
	userID := uuid.New()

	now := time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)

	session, err := domain.NewSession(userID, "neck_stretch", now, 60)
	require.NoError(t, err)
	session.Completed = false
	require.NoError(t, repo.RecordSession(context.Background(), session))

	stats, err := repo.Snapshot(context.Background(), userID, now)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TodaySessions)
	assert.Equal(t, 0, stats.LifetimeSessions)

	sessions, err := repo.RecentSessions(context.Background(), userID, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].Completed)
}

func TestSQLiteSessionRepository_RecentSessions(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewSQLiteSessionRepository(db, 8)
	userID := uuid.New()

	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		recordAt(t, repo, userID, base.Add(time.Duration(i)*time.Hour))
	}

	sessions, err := repo.RecentSessions(context.Background(), userID, 3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, base.Add(4*time.Hour), sessions[0].StartedAt)
	assert.Equal(t, base.Add(3*time.Hour), sessions[1].StartedAt)
	assert.Equal(t, base.Add(2*time.Hour), sessions[2].StartedAt)
}
