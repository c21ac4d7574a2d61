// Package domain contains the exercise catalog types.
package domain

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates the exercise does not exist.
	ErrNotFound = errors.New("exercise not found")
	// ErrEmptyName indicates an exercise without a name.
	ErrEmptyName = errors.New("exercise name is required")
	// ErrInvalidType indicates an unknown exercise type.
	ErrInvalidType = errors.New("invalid exercise type")
	// ErrInvalidDuration indicates a non-positive duration.
	ErrInvalidDuration = errors.New("exercise duration must be positive")
	// ErrNotCustom indicates an attempt to remove a built-in exercise.
	ErrNotCustom = errors.New("built-in exercises cannot be removed")
)

// Type classifies an exercise.
type Type string

const (
	TypeStretch   Type = "stretch"
	TypeEyes      Type = "eyes"
	TypePosture   Type = "posture"
	TypeBreathing Type = "breathing"
)

// IsValid reports whether t is a known exercise type.
func (t Type) IsValid() bool {
	switch t {
	case TypeStretch, TypeEyes, TypePosture, TypeBreathing:
		return true
	}
	return false
}

// Exercise is one entry of the break exercise catalog.
type Exercise struct {
	ID              string
	Name            string
	Description     string
	Type            Type
	DurationSeconds int
	Image           string
	Video           string
	Custom          bool
}

// NewCustomExercise creates a user-defined exercise.
func NewCustomExercise(name, description string, exerciseType Type, durationSeconds int) (*Exercise, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !exerciseType.IsValid() {
		return nil, ErrInvalidType
	}
	if durationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Exercise{
		ID:              "custom_" + uuid.NewString(),
		Name:            name,
		Description:     description,
		Type:            exerciseType,
		DurationSeconds: durationSeconds,
		Custom:          true,
	}, nil
}

// RandomExercise picks a random exercise, optionally restricted to one type.
// The second return value is false when nothing matches.
func RandomExercise(exercises []Exercise, exerciseType Type) (Exercise, bool) {
	var candidates []Exercise
	for _, ex := range exercises {
		if exerciseType != "" && ex.Type != exerciseType {
			continue
		}
		candidates = append(candidates, ex)
	}
	if len(candidates) == 0 {
		return Exercise{}, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

// DefaultCatalog returns the built-in exercise set.
func DefaultCatalog() []Exercise {
	return []Exercise{
		{
			ID:              "neck_stretch",
			Name:            "Neck Stretch",
			Description:     "Tilt your head to one side and hold for 10 seconds. Repeat on the other side.",
			Type:            TypeStretch,
			DurationSeconds: 30,
			Image:           "neck_stretch.png",
			Video:           "neck_stretch.mp4",
		},
		{
			ID:              "shoulder_roll",
			Name:            "Shoulder Rolls",
			Description:     "Roll your shoulders backwards in slow circles, then forwards.",
			Type:            TypeStretch,
			DurationSeconds: 30,
			Image:           "shoulder_roll.png",
		},
		{
			ID:              "wrist_stretch",
			Name:            "Wrist Stretch",
			Description:     "Extend one arm, palm up, and gently pull the fingers back with the other hand.",
			Type:            TypeStretch,
			DurationSeconds: 30,
			Image:           "wrist_stretch.png",
		},
		{
			ID:              "eye_rest",
			Name:            "20-20-20 Eye Rest",
			Description:     "Look at something 20 feet away for 20 seconds.",
			Type:            TypeEyes,
			DurationSeconds: 20,
			Image:           "eye_rest.png",
		},
		{
			ID:              "posture_reset",
			Name:            "Posture Reset",
			Description:     "Sit tall, pull your shoulder blades together and tuck your chin.",
			Type:            TypePosture,
			DurationSeconds: 30,
			Image:           "posture_reset.png",
		},
		{
			ID:              "deep_breathing",
			Name:            "Deep Breathing",
			Description:     "Breathe in for four counts, hold for four, breathe out for four.",
			Type:            TypeBreathing,
			DurationSeconds: 60,
			Image:           "deep_breathing.png",
		},
	}
}
