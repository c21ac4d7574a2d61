package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for achievement persistence.
//
// RecordUnlocks is the atomic check-and-insert the unlock invariants rely
// on: the whole batch is written in one transaction, rows that lose the
// uniqueness race on (user, achievement) are silently skipped, and only the
// IDs actually inserted are returned.
type Repository interface {
	// SeedCatalog populates the catalog with defs if and only if it is
	// currently empty. Safe to call on every startup.
	SeedCatalog(ctx context.Context, defs []Definition) error

	// Catalog returns all definitions in stable sort order.
	Catalog(ctx context.Context) ([]Definition, error)

	// UnlockedIDs returns the set of achievement IDs already unlocked for
	// the user.
	UnlockedIDs(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error)

	// RecordUnlocks inserts one unlock record per achievement ID and
	// returns the IDs that were actually inserted (duplicates excluded).
	RecordUnlocks(ctx context.Context, userID uuid.UUID, achievementIDs []string, unlockedAt time.Time) ([]string, error)

	// Unlocks returns the user's unlock records, most recent first.
	Unlocks(ctx context.Context, userID uuid.UUID) ([]UnlockRecord, error)
}
