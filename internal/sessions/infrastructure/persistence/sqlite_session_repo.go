// Package persistence provides storage implementations for sessions.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/activepause/activepause/internal/sessions/domain"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// SQLiteSessionRepository implements domain.Repository with SQLite.
//
// Completed sessions are double-booked into daily_stats so that day-based
// stats (streak, week, today) read one small aggregate table instead of
// scanning the session log.
type SQLiteSessionRepository struct {
	dbConn          *sql.DB
	earlyCutoffHour int
}

// NewSQLiteSessionRepository creates a new repository. earlyCutoffHour is
// the local hour before which a session counts as an early session.
func NewSQLiteSessionRepository(dbConn *sql.DB, earlyCutoffHour int) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{dbConn: dbConn, earlyCutoffHour: earlyCutoffHour}
}

// RecordSession inserts the session and, when completed, bumps the user's
// daily aggregate, in one transaction.
func (r *SQLiteSessionRepository) RecordSession(ctx context.Context, session *domain.Session) error {
	tx, err := r.dbConn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO exercise_sessions (id, user_id, exercise_id, started_at, duration_seconds, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insertQuery,
		session.ID.String(),
		session.UserID.String(),
		session.ExerciseID,
		session.StartedAt.Format(time.RFC3339),
		session.DurationSeconds,
		boolToInt(session.Completed),
	); err != nil {
		return fmt.Errorf("record session: %w", err)
	}

	if session.Completed {
		upsertQuery := `
			INSERT INTO daily_stats (user_id, day, sessions_completed, total_seconds)
			VALUES (?, ?, 1, ?)
			ON CONFLICT (user_id, day) DO UPDATE SET
				sessions_completed = sessions_completed + 1,
				total_seconds = total_seconds + excluded.total_seconds
		`
		day := session.StartedAt.Format(dateLayout)
		if _, err := tx.ExecContext(ctx, upsertQuery,
			session.UserID.String(), day, session.DurationSeconds,
		); err != nil {
			return fmt.Errorf("record session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Snapshot computes the user's stats relative to now.
func (r *SQLiteSessionRepository) Snapshot(ctx context.Context, userID uuid.UUID, now time.Time) (domain.Stats, error) {
	var stats domain.Stats

	dayQuery := `
		SELECT day, sessions_completed, total_seconds
		FROM daily_stats
		WHERE user_id = ?
		ORDER BY day DESC
	`
	rows, err := r.dbConn.QueryContext(ctx, dayQuery, userID.String())
	if err != nil {
		return domain.Stats{}, fmt.Errorf("snapshot: %w", err)
	}
	defer rows.Close()

	var days []dayStat
	for rows.Next() {
		var d dayStat
		if err := rows.Scan(&d.day, &d.sessions, &d.seconds); err != nil {
			return domain.Stats{}, fmt.Errorf("snapshot: %w", err)
		}
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

	early, err := r.earlySessions(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	stats.EarlySessions = early

	return stats, nil
}

// RecentSessions returns up to limit sessions, most recent first.
func (r *SQLiteSessionRepository) RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Session, error) {
	query := `
		SELECT id, user_id, exercise_id, started_at, duration_seconds, completed
		FROM exercise_sessions
		WHERE user_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`
	rows, err := r.dbConn.QueryContext(ctx, query, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("recent sessions: %w", err)
		}
		sessions = append(sessions, session)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("recent sessions: %w", rows.Err())
	}
	return sessions, nil
}

func (r *SQLiteSessionRepository) earlySessions(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT started_at FROM exercise_sessions WHERE user_id = ? AND completed = 1`
	rows, err := r.dbConn.QueryContext(ctx, query, userID.String())
	if err != nil {
		return 0, fmt.Errorf("snapshot: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return 0, fmt.Errorf("snapshot: %w", err)
		}
		startedAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return 0, fmt.Errorf("snapshot: parse started_at: %w", err)
		}
		if startedAt.Hour() < r.earlyCutoffHour {
			count++
		}
	}
	if rows.Err() != nil {
		return 0, fmt.Errorf("snapshot: %w", rows.Err())
	}
	return count, nil
}

type dayStat struct {
	day      string
	sessions int
	seconds  int
}

// streakFrom counts consecutive active days ending today, or yesterday when
// today has no session yet. days must be sorted most recent first.
func streakFrom(days []dayStat, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	cursor := now
	if days[0].day != now.Format(dateLayout) {
		cursor = now.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range days {
		if d.day != cursor.Format(dateLayout) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// weekDaysFrom counts distinct active days in now's ISO week.
func weekDaysFrom(days []dayStat, now time.Time) int {
	wantYear, wantWeek := now.ISOWeek()

	count := 0
	for _, d := range days {
		day, err := time.ParseInLocation(dateLayout, d.day, now.Location())
		if err != nil {
			continue
		}
		year, week := day.ISOWeek()
		if year == wantYear && week == wantWeek {
			count++
		}
	}
	return count
}

func scanSession(rows *sql.Rows) (domain.Session, error) {
	var (
		session   domain.Session
		id        string
		userID    string
		startedAt string
		completed int
	)
	if err := rows.Scan(&id, &userID, &session.ExerciseID, &startedAt, &session.DurationSeconds, &completed); err != nil {
		return domain.Session{}, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return domain.Session{}, err
	}
	parsedUserID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Session{}, err
	}
	parsedStartedAt, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return domain.Session{}, err
	}

	session.ID = parsedID
	session.UserID = parsedUserID
	session.StartedAt = parsedStartedAt
	session.Completed = completed == 1
	return session, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ domain.Repository = (*SQLiteSessionRepository)(nil)
