package exercise

import (
	"fmt"

	"github.com/activepause/activepause/adapter/cli"
	"github.com/activepause/activepause/internal/exercises/domain"
	"github.com/spf13/cobra"
)

var (
	addDescription string
	addType        string
	addDuration    int
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Long: `Add a custom exercise to the catalog.

Examples:
  activepause exercise add "Desk Squats" --type stretch --duration 45
  activepause exercise add "Box Breathing" --type breathing --duration 60 \
      --description "Breathe in a 4-4-4-4 rhythm"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ExerciseRepo == nil {
			fmt.Println("Adding exercises requires a database connection.")
			return nil
		}

		exercise, err := domain.NewCustomExercise(args[0], addDescription, domain.Type(addType), addDuration)
		if err != nil {
			return err
		}

		if err := app.ExerciseRepo.Add(cmd.Context(), exercise); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		fmt.Printf("Added custom exercise %q (id: %s).\n", exercise.Name, exercise.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "short instructions for the exercise")
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "exercise type (stretch, eyes, posture, breathing)")
	addCmd.Flags().IntVar(&addDuration, "duration", 30, "duration in seconds")
	_ = addCmd.MarkFlagRequired("type")
}
