package achievement

import (
	"fmt"
	"strings"

	"github.com/activepause/activepause/adapter/cli"
	"github.com/activepause/activepause/internal/achievements/application/queries"
	"github.com/spf13/cobra"
)

var onlyUnlocked bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List achievements",
	Long: `List all achievements with their unlock status.

Examples:
  activepause achievement list             # Full catalog
  activepause achievement list --unlocked  # Only what you have earned`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListAchievementsHandler == nil {
			fmt.Println("Achievement listing requires a database connection.")
			return nil
		}

		query := queries.ListAchievementsQuery{
			UserID:       app.CurrentUserID,
			OnlyUnlocked: onlyUnlocked,
		}

		achievements, err := app.ListAchievementsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list achievements: %w", err)
		}

		if len(achievements) == 0 {
			if onlyUnlocked {
				fmt.Println("No achievements unlocked yet. Log a break to earn your first one.")
			} else {
				fmt.Println("No achievements found.")
			}
			return nil
		}

		unlocked := 0
		for _, a := range achievements {
			if a.Unlocked {
				unlocked++
			}
		}

		if onlyUnlocked {
			fmt.Printf("Unlocked achievements (%d):\n", len(achievements))
		} else {
			fmt.Printf("Achievements (%d/%d unlocked):\n", unlocked, len(achievements))
		}
		fmt.Println(strings.Repeat("-", 60))

		for _, a := range achievements {
			status := "[ ]"
			if a.Unlocked {
				status = "[x]"
			}

			fmt.Printf("%s %s %s - %s\n", status, a.Icon, a.Name, a.Description)
			if a.Unlocked && a.UnlockedAt != nil {
				fmt.Printf("    Unlocked: %s\n", a.UnlockedAt.Local().Format("2006-01-02 15:04"))
			}
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&onlyUnlocked, "unlocked", "u", false, "show only unlocked achievements")
}
