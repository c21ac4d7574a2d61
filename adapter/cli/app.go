package cli

import (
	achievementQueries "github.com/activepause/activepause/internal/achievements/application/queries"
	exercisesDomain "github.com/activepause/activepause/internal/exercises/domain"
	"github.com/activepause/activepause/internal/reminder"
	sessionCommands "github.com/activepause/activepause/internal/sessions/application/commands"
	sessionsDomain "github.com/activepause/activepause/internal/sessions/domain"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	CurrentUserID        uuid.UUID
	BreakDurationMinutes int

	RecordSessionHandler    *sessionCommands.RecordSessionHandler
	ListAchievementsHandler *achievementQueries.ListAchievementsHandler

	SessionRepo  sessionsDomain.Repository
	ExerciseRepo exercisesDomain.Repository

	Scheduler  *reminder.Scheduler
	Suppressor reminder.Suppressor
}

var app *App

// SetApp installs the CLI application dependencies.
func SetApp(a *App) {
	app = a
}

// GetApp returns the CLI application dependencies, or nil when the backing
// services are unavailable.
func GetApp() *App {
	return app
}
