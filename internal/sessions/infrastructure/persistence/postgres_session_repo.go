package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/activepause/activepause/internal/sessions/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSessionRepository implements domain.Repository with PostgreSQL.
type PostgresSessionRepository struct {
	pool            *pgxpool.Pool
	earlyCutoffHour int
}

// NewPostgresSessionRepository creates a new repository.
func NewPostgresSessionRepository(pool *pgxpool.Pool, earlyCutoffHour int) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool, earlyCutoffHour: earlyCutoffHour}
}

// RecordSession inserts the session and, when completed, bumps the user's
// daily aggregate, in one transaction.
func (r *PostgresSessionRepository) RecordSession(ctx context.Context, session *domain.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO exercise_sessions (id, user_id, exercise_id, started_at, duration_seconds, completed)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, insertQuery,
		session.ID, session.UserID, session.ExerciseID,
		session.StartedAt, session.DurationSeconds, session.Completed,
	); err != nil {
		return fmt.Errorf("record session: %w", err)
	}

	if session.Completed {
		upsertQuery := `
			INSERT INTO daily_stats (user_id, day, sessions_completed, total_seconds)
			VALUES ($1, $2, 1, $3)
			ON CONFLICT (user_id, day) DO UPDATE SET
				sessions_completed = daily_stats.sessions_completed + 1,
				total_seconds = daily_stats.total_seconds + EXCLUDED.total_seconds
		`
		day := session.StartedAt.Format(dateLayout)
		if _, err := tx.Exec(ctx, upsertQuery, session.UserID, day, session.DurationSeconds); err != nil {
			return fmt.Errorf("record session: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Snapshot computes the user's stats relative to now.
func (r *PostgresSessionRepository) Snapshot(ctx context.Context, userID uuid.UUID, now time.Time) (domain.Stats, error) {
	var stats domain.Stats

	dayQuery := `
		SELECT day, sessions_completed, total_seconds
		FROM daily_stats
		WHERE user_id = $1
		ORDER BY day DESC
	`
	rows, err := r.pool.Query(ctx, dayQuery, userID)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("snapshot: %w", err)
	}
	defer rows.Close()

	var days []dayStat
	for rows.Next() {
		var (
			day time.Time
			d   dayStat
		)
		if err := rows.Scan(&day, &d.sessions, &d.seconds); err != nil {
			return domain.Stats{}, fmt.Errorf("snapshot: %w", err)
		}
		d.day = day.Format(dateLayout)
		days = append(days, d)
	}
	if rows.Err() != nil {
		return domain.Stats{}, fmt.Errorf("snapshot: %w", rows.Err())
	}

	today := now.Format(dateLayout)
	for _, d := range days {
		stats.LifetimeSessions += d.sessions
		stats.TotalSeconds += d.seconds
		if d.day == today {
			stats.TodaySessions = d.sessions
		}
	}
	stats.CurrentStreak = streakFrom(days, now)
	stats.WeekDays = weekDaysFrom(days, now)

	earlyQuery := `
		SELECT started_at FROM exercise_sessions
		WHERE user_id = $1 AND completed = TRUE
	`
	earlyRows, err := r.pool.Query(ctx, earlyQuery, userID)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("snapshot: %w", err)
	}
	defer earlyRows.Close()

	for earlyRows.Next() {
		var startedAt time.Time
		if err := earlyRows.Scan(&startedAt); err != nil {
			return domain.Stats{}, fmt.Errorf("snapshot: %w", err)
		}
		if startedAt.In(now.Location()).Hour() < r.earlyCutoffHour {
			stats.EarlySessions++
		}
	}
	if earlyRows.Err() != nil {
		return domain.Stats{}, fmt.Errorf("snapshot: %w", earlyRows.Err())
	}

	return stats, nil
}

// RecentSessions returns up to limit sessions, most recent first.
func (r *PostgresSessionRepository) RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Session, error) {
	query := `
		SELECT id, user_id, exercise_id, started_at, duration_seconds, completed
		FROM exercise_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(
			&session.ID, &session.UserID, &session.ExerciseID,
			&session.StartedAt, &session.DurationSeconds, &session.Completed,
		); err != nil {
			return nil, fmt.Errorf("recent sessions: %w", err)
		}
		sessions = append(sessions, session)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("recent sessions: %w", rows.Err())
	}
	return sessions, nil
}

var _ domain.Repository = (*PostgresSessionRepository)(nil)
