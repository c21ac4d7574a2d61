package cli

import (
	"fmt"

	sessionCommands "github.com/activepause/activepause/internal/sessions/application/commands"
	"github.com/spf13/cobra"
)

var (
	logExerciseID string
	logDuration   int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a completed break",
	Long: `Record a completed exercise break and report any newly unlocked
achievements.

Examples:
  activepause log --exercise neck_stretch
  activepause log --exercise eye_rest --duration 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("Logging requires a database connection.")
			return nil
		}

		ctx := cmd.Context()

		exercise, err := app.ExerciseRepo.ByID(ctx, logExerciseID)
		if err != nil {
			return err
		}

		duration := logDuration
		if duration <= 0 {
			duration = exercise.DurationSeconds
		}

		result, err := app.RecordSessionHandler.Handle(ctx, sessionCommands.RecordSessionCommand{
			UserID:          app.CurrentUserID,
			ExerciseID:      exercise.ID,
			DurationSeconds: duration,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Logged %s (%ds). Sessions today: %d, streak: %d day(s).\n",
			exercise.Name, duration, result.Stats.TodaySessions, result.Stats.CurrentStreak)
		printUnlocks(result)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logExerciseID, "exercise", "", "exercise id (see 'activepause exercise list')")
	logCmd.Flags().IntVar(&logDuration, "duration", 0, "duration in seconds (defaults to the exercise duration)")
	_ = logCmd.MarkFlagRequired("exercise")
	AddCommand(logCmd)
}
