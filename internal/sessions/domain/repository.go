package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for session persistence.
type Repository interface {
	// RecordSession inserts the session and updates the user's daily
	// aggregates in one transaction.
	RecordSession(ctx context.Context, session *Session) error

	// Snapshot computes the user's stats relative to now. Always computed
	// from the stored sessions, never cached.
	Snapshot(ctx context.Context, userID uuid.UUID, now time.Time) (Stats, error)

	// RecentSessions returns up to limit sessions, most recent first.
	RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]Session, error)
}
