// Package domain contains the exercise session entity and stats types.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidDuration indicates a non-positive session duration.
	ErrInvalidDuration = errors.New("session duration must be positive")
	// ErrMissingExercise indicates a session without an exercise reference.
	ErrMissingExercise = errors.New("session requires an exercise id")
)

// Session is one exercise break taken by a user.
type Session struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ExerciseID      string
	StartedAt       time.Time
	DurationSeconds int
	Completed       bool
}

// NewSession creates a completed session that started at startedAt.
func NewSession(userID uuid.UUID, exerciseID string, startedAt time.Time, durationSeconds int) (*Session, error) {
	if exerciseID == "" {
		return nil, ErrMissingExercise
	}
	if durationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Session{
		ID:              uuid.New(),
		UserID:          userID,
		ExerciseID:      exerciseID,
		StartedAt:       startedAt,
		DurationSeconds: durationSeconds,
		Completed:       true,
	}, nil
}

// Stats summarizes a user's session history at a point in time.
//
// TodaySessions, the streak and WeekDays are relative to the local date of
// the "now" the snapshot was taken with.
type Stats struct {
	TodaySessions    int
	LifetimeSessions int
	EarlySessions    int
	CurrentStreak    int
	WeekDays         int
	TotalSeconds     int
}
