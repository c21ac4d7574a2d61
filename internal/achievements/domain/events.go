package domain

import (
	"time"

	sharedDomain "github.com/activepause/activepause/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "Achievement"

// AchievementUnlocked is emitted once per newly unlocked achievement.
type AchievementUnlocked struct {
	sharedDomain.BaseEvent
	UserID        uuid.UUID `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	Name          string    `json:"name"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// NewAchievementUnlocked creates an AchievementUnlocked event.
func NewAchievementUnlocked(userID uuid.UUID, def Definition, unlockedAt time.Time) *AchievementUnlocked {
	return &AchievementUnlocked{
		BaseEvent:     sharedDomain.NewBaseEvent(userID, aggregateType, "achievements.achievement.unlocked"),
		UserID:        userID,
		AchievementID: def.ID,
		Name:          def.Name,
		UnlockedAt:    unlockedAt,
	}
}
