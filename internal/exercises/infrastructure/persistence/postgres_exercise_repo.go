package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/activepause/activepause/internal/exercises/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresExerciseRepository implements domain.Repository with PostgreSQL.
type PostgresExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresExerciseRepository creates a new repository.
func NewPostgresExerciseRepository(pool *pgxpool.Pool) *PostgresExerciseRepository {
	return &PostgresExerciseRepository{pool: pool}
}

// Seed inserts defs only when the exercises table has no built-in entries.
func (r *PostgresExerciseRepository) Seed(ctx context.Context, defs []domain.Exercise) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM exercises WHERE custom = FALSE`).Scan(&count); err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO exercises (id, name, description, exercise_type, duration_seconds, image, video, custom)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, ex := range defs {
		if _, err := tx.Exec(ctx, query,
			ex.ID, ex.Name, ex.Description, string(ex.Type),
			ex.DurationSeconds, nullable(ex.Image), nullable(ex.Video), ex.Custom,
		); err != nil {
			return fmt.Errorf("seed exercises: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	return nil
}

// List returns all exercises, built-in first, then custom, by name.
func (r *PostgresExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	query := `
		SELECT id, name, description, exercise_type, duration_seconds, image, video, custom
		FROM exercises
		ORDER BY custom, name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		ex, err := scanPgExercise(rows.Scan)
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
func (r *PostgresExerciseRepository) ByID(ctx context.Context, id string) (*domain.Exercise, error) {
	query := `
		SELECT id, name, description, exercise_type, duration_seconds, image, video, custom
		FROM exercises
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	ex, err := scanPgExercise(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return &ex, nil
}

// Add inserts a custom exercise.
func (r *PostgresExerciseRepository) Add(ctx context.Context, exercise *domain.Exercise) error {
	query := `
		INSERT INTO exercises (id, name, description, exercise_type, duration_seconds, image, video, custom)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		exercise.ID, exercise.Name, exercise.Description, string(exercise.Type),
		exercise.DurationSeconds, nullable(exercise.Image), nullable(exercise.Video), exercise.Custom,
	)
	if err != nil {
		return fmt.Errorf("add exercise: %w", err)
	}
	return nil
}

// Remove deletes a custom exercise.
func (r *PostgresExerciseRepository) Remove(ctx context.Context, id string) error {
	var custom bool
	err := r.pool.QueryRow(ctx, `SELECT custom FROM exercises WHERE id = $1`, id).Scan(&custom)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove exercise: %w", err)
	}
	if !custom {
		return domain.ErrNotCustom
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id); err != nil {
		return fmt.Errorf("remove exercise: %w", err)
	}
	return nil
}

func scanPgExercise(scan func(dest ...any) error) (domain.Exercise, error) {
	var (
		ex           domain.Exercise
		exerciseType string
		image        *string
		video        *string
	)
	if err := scan(&ex.ID, &ex.Name, &ex.Description, &exerciseType, &ex.DurationSeconds, &image, &video, &ex.Custom); err != nil {
		return domain.Exercise{}, err
	}
	ex.Type = domain.Type(exerciseType)
	if image != nil {
		ex.Image = *image
	}
	if video != nil {
		ex.Video = *video
	}
	return ex, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ domain.Repository = (*PostgresExerciseRepository)(nil)
