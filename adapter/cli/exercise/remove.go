package exercise

import (
	"errors"
	"fmt"

	"github.com/activepause/activepause/adapter/cli"
	"github.com/activepause/activepause/internal/exercises/domain"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Short:   "Remove a custom exercise",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ExerciseRepo == nil {
			fmt.Println("Removing exercises requires a database connection.")
			return nil
		}

		err := app.ExerciseRepo.Remove(cmd.Context(), args[0])
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("no exercise with id %q", args[0])
		case errors.Is(err, domain.ErrNotCustom):
			return fmt.Errorf("%q is a built-in exercise and cannot be removed", args[0])
		case err != nil:
			return fmt.Errorf("failed to remove exercise: %w", err)
		}

		fmt.Printf("Removed exercise %q.\n", args[0])
		return nil
	},
}
