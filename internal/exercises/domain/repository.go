package domain

import "context"

// Repository defines the interface for exercise catalog persistence.
type Repository interface {
	// Seed populates the catalog with defs if and only if it is currently
	// empty. Safe to call on every startup.
	Seed(ctx context.Context, defs []Exercise) error

	// List returns all exercises, built-in first, then custom, by name.
	List(ctx context.Context) ([]Exercise, error)

	// ByID returns the exercise with the given ID or ErrNotFound.
	ByID(ctx context.Context, id string) (*Exercise, error)

	// Add inserts a custom exercise.
	Add(ctx context.Context, exercise *Exercise) error

	// Remove deletes a custom exercise. Removing a built-in exercise
	// returns ErrNotCustom.
	Remove(ctx context.Context, id string) error
}
