// Package domain contains the achievement catalog and unlock model.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrStorageUnavailable wraps persistence failures so callers can treat
	// them as recoverable and retry the whole evaluation later.
	ErrStorageUnavailable = errors.New("achievement storage unavailable")
)

// ConditionType identifies which snapshot field an achievement is gated on.
type ConditionType string

const (
	// ConditionSessionCount compares against sessions completed today.
	ConditionSessionCount ConditionType = "session_count"
	// ConditionDailyStreak compares against consecutive active days.
	ConditionDailyStreak ConditionType = "daily_streak"
	// ConditionTotalSessions compares against the lifetime session count.
	ConditionTotalSessions ConditionType = "total_sessions"
	// ConditionEarlySession compares against sessions completed before the
	// early-morning cutoff.
	ConditionEarlySession ConditionType = "early_session"
	// ConditionWeeklyCompletion compares against distinct active days in the
	// current week.
	ConditionWeeklyCompletion ConditionType = "weekly_completion"
)

// Definition is an immutable catalog entry describing one achievement.
type Definition struct {
	ID             string
	Name           string
	Description    string
	Icon           string
	ConditionType  ConditionType
	ConditionValue int
	SortOrder      int
}

// Met reports whether the definition's condition holds for the snapshot.
// Unknown condition types never unlock.
func (d Definition) Met(snapshot StatsSnapshot) bool {
	switch d.ConditionType {
	case ConditionSessionCount:
		return snapshot.TotalSessions >= d.ConditionValue
	case ConditionDailyStreak:
		return snapshot.CurrentStreak >= d.ConditionValue
	case ConditionTotalSessions:
		return snapshot.LifetimeSessions >= d.ConditionValue
	case ConditionEarlySession:
		return snapshot.EarlySessions >= d.ConditionValue
	case ConditionWeeklyCompletion:
		return snapshot.WeeklyDaysCompleted >= d.ConditionValue
	default:
		return false
	}
}

// DefaultCatalog returns the built-in achievement set, seeded once into an
// empty catalog.
func DefaultCatalog() []Definition {
	return []Definition{
		{
			ID:             "first_time",
			Name:           "First Break",
			Description:    "Complete your first active break",
			Icon:           "first_icon.png",
			ConditionType:  ConditionSessionCount,
			ConditionValue: 1,
			SortOrder:      1,
		},
		{
			ID:             "daily_streak_3",
			Name:           "3-Day Streak",
			Description:    "Complete active breaks on 3 consecutive days",
			Icon:           "streak_3.png",
			ConditionType:  ConditionDailyStreak,
			ConditionValue: 3,
			SortOrder:      2,
		},
		{
			ID:             "marathon",
			Name:           "Marathon",
			Description:    "Complete 100 active breaks",
			Icon:           "marathon.png",
			ConditionType:  ConditionTotalSessions,
			ConditionValue: 100,
			SortOrder:      3,
		},
		{
			ID:             "early_bird",
			Name:           "Early Bird",
			Description:    "Complete a break before 8 AM",
			Icon:           "early_bird.png",
			ConditionType:  ConditionEarlySession,
			ConditionValue: 1,
			SortOrder:      4,
		},
		{
			ID:             "week_complete",
			Name:           "Full Week",
			Description:    "Complete breaks every day of the week",
			Icon:           "week_complete.png",
			ConditionType:  ConditionWeeklyCompletion,
			ConditionValue: 7,
			SortOrder:      5,
		},
	}
}

// UnlockRecord relates a user to an unlocked achievement. Created exactly
// once per (user, achievement) pair, immutable thereafter.
type UnlockRecord struct {
	UserID        uuid.UUID
	AchievementID string
	UnlockedAt    time.Time
}
