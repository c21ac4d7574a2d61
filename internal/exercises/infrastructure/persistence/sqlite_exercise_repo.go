// Package persistence provides storage implementations for the exercise
// catalog.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/activepause/activepause/internal/exercises/domain"
)

// SQLiteExerciseRepository implements domain.Repository with SQLite.
type SQLiteExerciseRepository struct {
	dbConn *sql.DB
}

// NewSQLiteExerciseRepository creates a new repository.
func NewSQLiteExerciseRepository(dbConn *sql.DB) *SQLiteExerciseRepository {
	return &SQLiteExerciseRepository{dbConn: dbConn}
}

// Seed inserts defs only when the exercises table has no built-in entries.
func (r *SQLiteExerciseRepository) Seed(ctx context.Context, defs []domain.Exercise) error {
	tx, err := r.dbConn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises WHERE custom = 0`).Scan(&count); err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO exercises (id, name, description, exercise_type, duration_seconds, image, video, custom)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, ex := range defs {
		if _, err := tx.ExecContext(ctx, query,
			ex.ID, ex.Name, ex.Description, string(ex.Type),
			ex.DurationSeconds, toNullString(ex.Image), toNullString(ex.Video), boolToInt(ex.Custom),
		); err != nil {
			return fmt.Errorf("seed exercises: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	return nil
}

// List returns all exercises, built-in first, then custom, by name.
func (r *SQLiteExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	query := `
		SELECT id, name, description, exercise_type, duration_seconds, image, video, custom
		FROM exercises
		ORDER BY custom, name
	`
	rows, err := r.dbConn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list exercises: %w", err)
		}
		exercises = append(exercises, ex)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list exercises: %w", rows.Err())
	}
	return exercises, nil
}

// ByID returns the exercise with the given ID or ErrNotFound.
func (r *SQLiteExerciseRepository) ByID(ctx context.Context, id string) (*domain.Exercise, error) {
	query := `
		SELECT id, name, description, exercise_type, duration_seconds, image, video, custom
		FROM exercises
		WHERE id = ?
	`
	row := r.dbConn.QueryRowContext(ctx, query, id)
	ex, err := scanExercise(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return &ex, nil
}

// Add inserts a custom exercise.
func (r *SQLiteExerciseRepository) Add(ctx context.Context, exercise *domain.Exercise) error {
	query := `
		INSERT INTO exercises (id, name, description, exercise_type, duration_seconds, image, video, custom)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.dbConn.ExecContext(ctx, query,
		exercise.ID, exercise.Name, exercise.Description, string(exercise.Type),
		exercise.DurationSeconds, toNullString(exercise.Image), toNullString(exercise.Video), boolToInt(exercise.Custom),
	)
	if err != nil {
		return fmt.Errorf("add exercise: %w", err)
	}
	return nil
}

// Remove deletes a custom exercise.
func (r *SQLiteExerciseRepository) Remove(ctx context.Context, id string) error {
	var custom int
	err := r.dbConn.QueryRowContext(ctx, `SELECT custom FROM exercises WHERE id = ?`, id).Scan(&custom)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove exercise: %w", err)
	}
	if custom == 0 {
		return domain.ErrNotCustom
	}

	if _, err := r.dbConn.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove exercise: %w", err)
	}
	return nil
}

func scanExercise(scan func(dest ...any) error) (domain.Exercise, error) {
	var (
		ex           domain.Exercise
		exerciseType string
		image        sql.NullString
		video        sql.NullString
		custom       int
	)
	if err := scan(&ex.ID, &ex.Name, &ex.Description, &exerciseType, &ex.DurationSeconds, &image, &video, &custom); err != nil {
		return domain.Exercise{}, err
	}
	ex.Type = domain.Type(exerciseType)
	ex.Image = image.String
	ex.Video = video.String
	ex.Custom = custom == 1
	return ex, nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ domain.Repository = (*SQLiteExerciseRepository)(nil)
