// Package commands contains write-side handlers for sessions.
package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/activepause/activepause/internal/achievements/application/services"
	achievementsDomain "github.com/activepause/activepause/internal/achievements/domain"
	"github.com/activepause/activepause/internal/sessions/domain"
	"github.com/google/uuid"
)

// RecordSessionCommand contains the data needed to log a completed session.
type RecordSessionCommand struct {
	UserID          uuid.UUID
	ExerciseID      string
	StartedAt       time.Time // zero value means "now"
	DurationSeconds int
}

// RecordSessionResult contains the result of logging a session.
type RecordSessionResult struct {
	SessionID uuid.UUID
	Stats     domain.Stats
	Unlocked  []achievementsDomain.Definition
}

// RecordSessionHandler handles the RecordSessionCommand.
type RecordSessionHandler struct {
	sessions domain.Repository
	engine   *services.Engine
	events   services.DomainEventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewRecordSessionHandler creates a new RecordSessionHandler. events may be
// nil when no bus is wired.
func NewRecordSessionHandler(sessions domain.Repository, engine *services.Engine, events services.DomainEventPublisher, logger *slog.Logger) *RecordSessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordSessionHandler{
		sessions: sessions,
		engine:   engine,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle persists the session, recomputes the user's stats and runs the
// achievement engine against the fresh snapshot.
func (h *RecordSessionHandler) Handle(ctx context.Context, cmd RecordSessionCommand) (*RecordSessionResult, error) {
	startedAt := cmd.StartedAt
	if startedAt.IsZero() {
		startedAt = h.now()
	}

	session, err := domain.NewSession(cmd.UserID, cmd.ExerciseID, startedAt, cmd.DurationSeconds)
	if err != nil {
		return nil, err
	}

	if err := h.sessions.RecordSession(ctx, session); err != nil {
		return nil, err
	}

	if h.events != nil {
		if err := h.events.PublishDomainEvent(ctx, domain.NewSessionCompleted(session)); err != nil {
			h.logger.WarnContext(ctx, "failed to publish session event",
				"session_id", session.ID,
				"error", err,
			)
		}
	}

	stats, err := h.sessions.Snapshot(ctx, cmd.UserID, h.now())
	if err != nil {
		return nil, err
	}

	unlocked, err := h.engine.Evaluate(ctx, cmd.UserID, toAchievementSnapshot(stats))
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "session recorded",
		"session_id", session.ID,
		"exercise_id", session.ExerciseID,
		"new_achievements", len(unlocked),
	)

	return &RecordSessionResult{
		SessionID: session.ID,
		Stats:     stats,
		Unlocked:  unlocked,
	}, nil
}

func toAchievementSnapshot(stats domain.Stats) achievementsDomain.StatsSnapshot {
	weekDays := stats.WeekDays
	if weekDays > 7 {
		weekDays = 7
	}
	return achievementsDomain.StatsSnapshot{
		TotalSessions:       stats.TodaySessions,
		CurrentStreak:       stats.CurrentStreak,
		LifetimeSessions:    stats.LifetimeSessions,
		EarlySessions:       stats.EarlySessions,
		WeeklyDaysCompleted: weekDays,
	}
}
