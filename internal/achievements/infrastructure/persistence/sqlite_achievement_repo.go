// Package persistence provides storage implementations for achievements.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/activepause/activepause/internal/achievements/domain"
	"github.com/google/uuid"
)

// SQLiteAchievementRepository implements domain.Repository with SQLite.
type SQLiteAchievementRepository struct {
	dbConn *sql.DB
}

// NewSQLiteAchievementRepository creates a new repository.
func NewSQLiteAchievementRepository(dbConn *sql.DB) *SQLiteAchievementRepository {
	return &SQLiteAchievementRepository{dbConn: dbConn}
}

// SeedCatalog inserts defs only when the achievements table is empty.
func (r *SQLiteAchievementRepository) SeedCatalog(ctx context.Context, defs []domain.Definition) error {
	tx, err := r.dbConn.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM achievements`).Scan(&count); err != nil {
		return storageErr(err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO achievements (id, name, description, icon, condition_type, condition_value, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, def := range defs {
		if _, err := tx.ExecContext(ctx, query,
			def.ID, def.Name, def.Description, def.Icon,
			string(def.ConditionType), def.ConditionValue, def.SortOrder,
		); err != nil {
			return storageErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

// Catalog returns all definitions ordered by sort_order.
func (r *SQLiteAchievementRepository) Catalog(ctx context.Context) ([]domain.Definition, error) {
	query := `
		SELECT id, name, description, icon, condition_type, condition_value, sort_order
		FROM achievements
		ORDER BY sort_order
	`
	rows, err := r.dbConn.QueryContext(ctx, query)
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
func (r *SQLiteAchievementRepository) UnlockedIDs(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	query := `SELECT achievement_id FROM user_achievements WHERE user_id = ?`
	rows, err := r.dbConn.QueryContext(ctx, query, userID.String())
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
func (r *SQLiteAchievementRepository) RecordUnlocks(ctx context.Context, userID uuid.UUID, achievementIDs []string, unlockedAt time.Time) ([]string, error) {
	if len(achievementIDs) == 0 {
		return nil, nil
	}

	tx, err := r.dbConn.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	at := unlockedAt.UTC().Format(time.RFC3339)

	var inserted []string
	for _, id := range achievementIDs {
		result, err := tx.ExecContext(ctx, query, userID.String(), id, at)
		if err != nil {
			return nil, storageErr(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, storageErr(err)
		}
		if affected > 0 {
			inserted = append(inserted, id)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}
	return inserted, nil
}

// Unlocks returns the user's unlock records, most recent first.
func (r *SQLiteAchievementRepository) Unlocks(ctx context.Context, userID uuid.UUID) ([]domain.UnlockRecord, error) {
	query := `
		SELECT achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = ?
		ORDER BY unlocked_at DESC, achievement_id
	`
	rows, err := r.dbConn.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var records []domain.UnlockRecord
	for rows.Next() {
		var (
			id string
			at string
		)
		if err := rows.Scan(&id, &at); err != nil {
			return nil, storageErr(err)
		}
		unlockedAt, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("parse unlocked_at: %w", err)
		}
		records = append(records, domain.UnlockRecord{
			UserID:        userID,
			AchievementID: id,
			UnlockedAt:    unlockedAt,
		})
	}
	if rows.Err() != nil {
		return nil, storageErr(rows.Err())
	}
	return records, nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}

var _ domain.Repository = (*SQLiteAchievementRepository)(nil)
