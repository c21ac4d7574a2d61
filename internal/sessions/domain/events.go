package domain

import (
	"time"

	sharedDomain "github.com/activepause/activepause/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "Session"

// SessionCompleted is emitted after a session has been recorded.
type SessionCompleted struct {
	sharedDomain.BaseEvent
	SessionID       uuid.UUID `json:"session_id"`
	UserID          uuid.UUID `json:"user_id"`
	ExerciseID      string    `json:"exercise_id"`
	StartedAt       time.Time `json:"started_at"`
	DurationSeconds int       `json:"duration_seconds"`
}

// NewSessionCompleted creates a SessionCompleted event.
func NewSessionCompleted(session *Session) *SessionCompleted {
	return &SessionCompleted{
		BaseEvent:       sharedDomain.NewBaseEvent(session.ID, aggregateType, "sessions.session.completed"),
		SessionID:       session.ID,
		UserID:          session.UserID,
		ExerciseID:      session.ExerciseID,
		StartedAt:       session.StartedAt,
		DurationSeconds: session.DurationSeconds,
	}
}
