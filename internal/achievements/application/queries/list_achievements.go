// Package queries contains read-side handlers for achievements.
package queries

import (
	"context"
	"time"

	"github.com/activepause/activepause/internal/achievements/domain"
	"github.com/google/uuid"
)

// AchievementDTO is a data transfer object for an achievement and its
// unlock status for one user.
type AchievementDTO struct {
	ID            string
	Name          string
	Description   string
	Icon          string
	ConditionType string
	Unlocked      bool
	UnlockedAt    *time.Time
}

// ListAchievementsQuery contains the parameters for listing achievements.
type ListAchievementsQuery struct {
	UserID       uuid.UUID
	OnlyUnlocked bool
}

// ListAchievementsHandler handles the ListAchievementsQuery.
type ListAchievementsHandler struct {
	repo domain.Repository
}

// NewListAchievementsHandler creates a new ListAchievementsHandler.
func NewListAchievementsHandler(repo domain.Repository) *ListAchievementsHandler {
	return &ListAchievementsHandler{repo: repo}
}

// Handle returns the full catalog in sort order, each entry annotated with
// the user's unlock status.
func (h *ListAchievementsHandler) Handle(ctx context.Context, query ListAchievementsQuery) ([]AchievementDTO, error) {
	catalog, err := h.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	unlocks, err := h.repo.Unlocks(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, record := range unlocks {
		unlockedAt[record.AchievementID] = record.UnlockedAt
	}

	var dtos []AchievementDTO
	for _, def := range catalog {
		at, unlocked := unlockedAt[def.ID]
		if query.OnlyUnlocked && !unlocked {
			continue
		}
		dto := AchievementDTO{
			ID:            def.ID,
			Name:          def.Name,
			Description:   def.Description,
			Icon:          def.Icon,
			ConditionType: string(def.ConditionType),
			Unlocked:      unlocked,
		}
		if unlocked {
			t := at
			dto.UnlockedAt = &t
		}
		dtos = append(dtos, dto)
	}

	return dtos, nil
}
