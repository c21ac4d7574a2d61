// Package services contains the achievement evaluation engine.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/activepause/activepause/internal/achievements/domain"
	sharedDomain "github.com/activepause/activepause/internal/shared/domain"
	"github.com/google/uuid"
)

// DomainEventPublisher publishes domain events for downstream consumers.
type DomainEventPublisher interface {
	PublishDomainEvent(ctx context.Context, event sharedDomain.DomainEvent) error
}

// Engine evaluates unlock conditions against a stats snapshot and records
// newly unlocked achievements.
//
// Evaluation is serialized per user: concurrent calls for the same user
// take the same lock, concurrent calls for different users proceed in
// parallel. The storage-level unique key on (user, achievement) backs this
// up, so a lost insert race is reported as "already unlocked" rather than
// a duplicate.
type Engine struct {
	repo   domain.Repository
	events DomainEventPublisher
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

// NewEngine creates an achievement engine. events may be nil when no bus is
// wired.
func NewEngine(repo domain.Repository, events DomainEventPublisher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		repo:      repo,
		events:    events,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		userLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// SeedDefaults populates an empty catalog with the built-in achievement
// set. Repeated calls never duplicate entries.
func (e *Engine) SeedDefaults(ctx context.Context) error {
	return e.repo.SeedCatalog(ctx, domain.DefaultCatalog())
}

// Evaluate checks every not-yet-unlocked achievement against the snapshot
// and returns the definitions newly unlocked by this call, in catalog
// order. Calling twice with the same snapshot unlocks nothing on the
// second call.
//
// All unlocks of one call are written in a single transaction: on storage
// failure nothing is recorded and the caller may retry the whole call.
func (e *Engine) Evaluate(ctx context.Context, userID uuid.UUID, snapshot domain.StatsSnapshot) ([]domain.Definition, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	catalog, err := e.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	unlocked, err := e.repo.UnlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var due []string
	for _, def := range catalog {
		if _, ok := unlocked[def.ID]; ok {
			continue
		}
		if def.Met(snapshot) {
			due = append(due, def.ID)
		}
	}

	if len(due) == 0 {
		return nil, nil
	}

	unlockedAt := e.now()
	inserted, err := e.repo.RecordUnlocks(ctx, userID, due, unlockedAt)
	if err != nil {
		return nil, err
	}

	insertedSet := make(map[string]struct{}, len(inserted))
	for _, id := range inserted {
		insertedSet[id] = struct{}{}
	}

	var newly []domain.Definition
	for _, def := range catalog {
		if _, ok := insertedSet[def.ID]; ok {
			newly = append(newly, def)
		}
	}

	for _, def := range newly {
		e.logger.InfoContext(ctx, "achievement unlocked",
			"user_id", userID,
			"achievement_id", def.ID,
		)
		if e.events == nil {
			continue
		}
		event := domain.NewAchievementUnlocked(userID, def, unlockedAt)
		if err := e.events.PublishDomainEvent(ctx, event); err != nil {
			// The unlock is already durable; reporting is best-effort.
			e.logger.WarnContext(ctx, "failed to publish unlock event",
				"achievement_id", def.ID,
				"error", err,
			)
		}
	}

	return newly, nil
}

func (e *Engine) userLock(userID uuid.UUID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	return lock
}
