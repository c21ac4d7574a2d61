package exercise

import (
	"fmt"
	"strings"

	"github.com/activepause/activepause/adapter/cli"
	"github.com/activepause/activepause/internal/exercises/domain"
	"github.com/spf13/cobra"
)

var listType string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises",
	Long: `List the exercise catalog, built-in entries first.

Examples:
  activepause exercise list                # Full catalog
  activepause exercise list --type eyes    # Eye exercises only`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ExerciseRepo == nil {
			fmt.Println("Exercise listing requires a database connection.")
			return nil
		}

		if listType != "" && !domain.Type(listType).IsValid() {
			return fmt.Errorf("unknown exercise type %q", listType)
		}

		exercises, err := app.ExerciseRepo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		var filtered []domain.Exercise
		for _, ex := range exercises {
			if listType != "" && ex.Type != domain.Type(listType) {
				continue
			}
			filtered = append(filtered, ex)
		}

		if len(filtered) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		fmt.Printf("Exercises (%d):\n", len(filtered))
		fmt.Println(strings.Repeat("-", 60))

		for _, ex := range filtered {
			customStr := ""
			if ex.Custom {
				customStr = " [custom]"
			}
			fmt.Printf("%-16s %s (%s, %ds)%s\n", ex.ID, ex.Name, ex.Type, ex.DurationSeconds, customStr)
			if ex.Description != "" {
				fmt.Printf("    %s\n", ex.Description)
			}
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by type (stretch, eyes, posture, breathing)")
}
