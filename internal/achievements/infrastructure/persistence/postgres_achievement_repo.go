package persistence

import (
	"context"
	"time"

	"github.com/activepause/activepause/internal/achievements/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAchievementRepository implements domain.Repository with PostgreSQL.
type PostgresAchievementRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAchievementRepository creates a new repository.
func NewPostgresAchievementRepository(pool *pgxpool.Pool) *PostgresAchievementRepository {
	return &PostgresAchievementRepository{pool: pool}
}

// SeedCatalog inserts defs only when the achievements table is empty.
func (r *PostgresAchievementRepository) SeedCatalog(ctx context.Context, defs []domain.Definition) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM achievements`).Scan(&count); err != nil {
		return storageErr(err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO achievements (id, name, description, icon, condition_type, condition_value, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, def := range defs {
		if _, err := tx.Exec(ctx, query,
			def.ID, def.Name, def.Description, def.Icon,
			string(def.ConditionType), def.ConditionValue, def.SortOrder,
		); err != nil {
			return storageErr(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr(err)
	}
	return nil
}

// Catalog returns all definitions ordered by sort_order.
func (r *PostgresAchievementRepository) Catalog(ctx context.Context) ([]domain.Definition, error) {
	query := `
		SELECT id, name, description, icon, condition_type, condition_value, sort_order
		FROM achievements
		ORDER BY sort_order
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var defs []domain.Definition
	for rows.Next() {
		var (
			def           domain.Definition
			conditionType string
		)
		if err := rows.Scan(
			&def.ID, &def.Name, &def.Description, &def.Icon,
			&conditionType, &def.ConditionValue, &def.SortOrder,
		); err != nil {
			return nil, storageErr(err)
		}
		def.ConditionType = domain.ConditionType(conditionType)
		defs = append(defs, def)
	}
	if rows.Err() != nil {
		return nil, storageErr(rows.Err())
	}
	return defs, nil
}

// UnlockedIDs returns the set of achievement IDs the user has unlocked.
func (r *PostgresAchievementRepository) UnlockedIDs(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT achievement_id FROM user_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr(err)
		}
		ids[id] = struct{}{}
	}
	if rows.Err() != nil {
		return nil, storageErr(rows.Err())
	}
	return ids, nil
}

// RecordUnlocks inserts the whole batch in one transaction. Rows losing the
// primary-key race are skipped and excluded from the returned IDs.
func (r *PostgresAchievementRepository) RecordUnlocks(ctx context.Context, userID uuid.UUID, achievementIDs []string, unlockedAt time.Time) ([]string, error) {
	if len(achievementIDs) == 0 {
		return nil, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	var inserted []string
	for _, id := range achievementIDs {
		tag, err := tx.Exec(ctx, query, userID, id, unlockedAt.UTC())
		if err != nil {
			return nil, storageErr(err)
		}
		if tag.RowsAffected() > 0 {
			inserted = append(inserted, id)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr(err)
	}
	return inserted, nil
}

// Unlocks returns the user's unlock records, most recent first.
func (r *PostgresAchievementRepository) Unlocks(ctx context.Context, userID uuid.UUID) ([]domain.UnlockRecord, error) {
	query := `
		SELECT achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at DESC, achievement_id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var records []domain.UnlockRecord
	for rows.Next() {
		var record domain.UnlockRecord
		if err := rows.Scan(&record.AchievementID, &record.UnlockedAt); err != nil {
			return nil, storageErr(err)
		}
		record.UserID = userID
		records = append(records, record)
	}
	if rows.Err() != nil {
		return nil, storageErr(rows.Err())
	}
	return records, nil
}

var _ domain.Repository = (*PostgresAchievementRepository)(nil)
