package cli

import (
	"fmt"

	exercisesDomain "github.com/activepause/activepause/internal/exercises/domain"
	sessionCommands "github.com/activepause/activepause/internal/sessions/application/commands"
	"github.com/spf13/cobra"
)

var (
	startExerciseType string
	startAutoLog      bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the break reminder loop",
	Long: `Run the reminder scheduler in the foreground.

Every work interval a break reminder is printed with a suggested exercise.
Reminders are skipped while breaks are paused (see 'activepause pause').

Examples:
  activepause start                   # Remind with any exercise
  activepause start --type eyes       # Only eye exercises
  activepause start --auto-log        # Log each suggested break as done`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("The reminder loop requires a database connection.")
			return nil
		}

		if startExerciseType != "" && !exercisesDomain.Type(startExerciseType).IsValid() {
			return fmt.Errorf("unknown exercise type %q", startExerciseType)
		}

		ctx := cmd.Context()
		app.Scheduler.Start()
		defer app.Scheduler.Stop()

		fmt.Printf("Reminding every %s. Press Ctrl+C to stop.\n", app.Scheduler.Interval())

		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopping reminders.")
				return nil
			case fire, ok := <-app.Scheduler.Fires():
				if !ok {
					return app.Scheduler.Err()
				}

				suppressed, err := app.Suppressor.IsSuppressed(ctx, app.CurrentUserID)
				if err != nil {
					logger.Warn("suppression check failed", "error", err)
				}
				if suppressed {
					logger.Info("break suppressed", "at", fire.At)
					continue
				}

				exercises, err := app.ExerciseRepo.List(ctx)
				if err != nil {
					return err
				}
				exercise, ok := exercisesDomain.RandomExercise(exercises, exercisesDomain.Type(startExerciseType))
				if !ok {
					fmt.Println("\nTime for a break!")
					continue
				}

				fmt.Printf("\nTime for a break: %s (%ds)\n", exercise.Name, exercise.DurationSeconds)
				fmt.Printf("  %s\n", exercise.Description)

				if startAutoLog {
					result, err := app.RecordSessionHandler.Handle(ctx, sessionCommands.RecordSessionCommand{
						UserID:          app.CurrentUserID,
						ExerciseID:      exercise.ID,
						DurationSeconds: exercise.DurationSeconds,
					})
					if err != nil {
						logger.Warn("failed to log session", "error", err)
						continue
					}
					printUnlocks(result)
				}
			}
		}
	},
}

func printUnlocks(result *sessionCommands.RecordSessionResult) {
	for _, def := range result.Unlocked {
		fmt.Printf("  Achievement unlocked: %s %s - %s\n", def.Icon, def.Name, def.Description)
	}
}

func init() {
	startCmd.Flags().StringVar(&startExerciseType, "type", "", "restrict to one exercise type (stretch, eyes, posture, breathing)")
	startCmd.Flags().BoolVar(&startAutoLog, "auto-log", false, "log each suggested break as completed")
	AddCommand(startCmd)
}
