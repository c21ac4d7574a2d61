package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomExercise(t *testing.T) {
	t.Run("valid exercise", func(t *testing.T) {
		ex, err := NewCustomExercise("Desk Squats", "Stand up and sit down ten times.", TypePosture, 45)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(ex.ID, "custom_"))
		assert.Equal(t, "Desk Squats", ex.Name)
		assert.Equal(t, TypePosture, ex.Type)
		assert.Equal(t, 45, ex.DurationSeconds)
		assert.True(t, ex.Custom)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewCustomExercise("", "desc", TypeStretch, 30)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := NewCustomExercise("Jumping", "desc", Type("cardio"), 30)
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("non-positive duration rejected", func(t *testing.T) {
		_, err := NewCustomExercise("Jumping", "desc", TypeStretch, 0)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestRandomExercise(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("any type", func(t *testing.T) {
		ex, ok := RandomExercise(catalog, "")
		require.True(t, ok)
		assert.NotEmpty(t, ex.ID)
	})

	t.Run("restricted to type", func(t *testing.T) {
		ex, ok := RandomExercise(catalog, TypeEyes)
		require.True(t, ok)
		assert.Equal(t, "eye_rest", ex.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := RandomExercise(nil, TypeEyes)
		assert.False(t, ok)
	})
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.NotEmpty(t, catalog)

	seen := make(map[string]bool)
	types := make(map[Type]bool)
	for _, ex := range catalog {
		assert.False(t, seen[ex.ID], "duplicate id %s", ex.ID)
		seen[ex.ID] = true
		assert.True(t, ex.Type.IsValid())
		assert.Greater(t, ex.DurationSeconds, 0)
		assert.False(t, ex.Custom)
		types[ex.Type] = true
	}

	// Every type has at least one built-in exercise.
	for _, want := range []Type{TypeStretch, TypeEyes, TypePosture, TypeBreathing} {
		assert.True(t, types[want], "no built-in exercise of type %s", want)
	}
}
