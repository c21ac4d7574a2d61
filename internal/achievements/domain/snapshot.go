package domain

import "errors"

var (
	ErrNegativeCount   = errors.New("snapshot counts must be non-negative")
	ErrWeeklyDaysRange = errors.New("weekly days completed must be between 0 and 7")
)

// StatsSnapshot is a point-in-time aggregate of a user's exercise
// statistics, supplied by the caller at evaluation time. It is never
// persisted here.
type StatsSnapshot struct {
	// TotalSessions is the number of completed sessions today.
	TotalSessions int
	// CurrentStreak is the number of consecutive days with at least one
	// completed session.
	CurrentStreak int
	// LifetimeSessions is the all-time completed session count.
	LifetimeSessions int
	// EarlySessions is the count of sessions completed before the
	// early-morning cutoff hour.
	EarlySessions int
	// WeeklyDaysCompleted is the number of distinct days with activity in
	// the current week (0-7).
	WeeklyDaysCompleted int
}

// Validate checks the snapshot invariants.
func (s StatsSnapshot) Validate() error {
	if s.TotalSessions < 0 || s.CurrentStreak < 0 || s.LifetimeSessions < 0 || s.EarlySessions < 0 {
		return ErrNegativeCount
	}
	if s.WeeklyDaysCompleted < 0 || s.WeeklyDaysCompleted > 7 {
		return ErrWeeklyDaysRange
	}
	return nil
}
