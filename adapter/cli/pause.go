package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause <duration>",
	Short: "Pause break reminders",
	Long: `Suspend break reminders for a while, for example during a meeting or
presentation. The pause expires on its own.

Examples:
  activepause pause 30m
  activepause pause 2h`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("Pausing requires a database connection.")
			return nil
		}

		duration, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[0], err)
		}
		if duration <= 0 {
			return fmt.Errorf("duration must be positive")
		}

		if err := app.Suppressor.Suppress(cmd.Context(), app.CurrentUserID, duration); err != nil {
			return err
		}

		fmt.Printf("Break reminders paused for %s.\n", duration)
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume break reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("Resuming requires a database connection.")
			return nil
		}

		if err := app.Suppressor.Resume(cmd.Context(), app.CurrentUserID); err != nil {
			return err
		}

		fmt.Println("Break reminders resumed.")
		return nil
	},
}

func init() {
	AddCommand(pauseCmd)
	AddCommand(resumeCmd)
}
