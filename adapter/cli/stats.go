package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show break statistics",
	Long: `Display a summary of your break history: sessions today, lifetime
totals, your current daily streak and activity this week.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("Stats require a database connection.")
			return nil
		}

		stats, err := app.SessionRepo.Snapshot(cmd.Context(), app.CurrentUserID, time.Now())
		if err != nil {
			return err
		}

		fmt.Println("\n  Break Stats")
		fmt.Println(strings.Repeat("=", 40))
		fmt.Printf("  Today:          %d session(s)\n", stats.TodaySessions)
		fmt.Printf("  Streak:         %d day(s)\n", stats.CurrentStreak)
		fmt.Printf("  This week:      %d active day(s)\n", stats.WeekDays)
		fmt.Printf("  Lifetime:       %d session(s)\n", stats.LifetimeSessions)
		fmt.Printf("  Early starts:   %d\n", stats.EarlySessions)
		fmt.Printf("  Total time:     %s\n", (time.Duration(stats.TotalSeconds) * time.Second).String())
		fmt.Println()
		return nil
	},
}

func init() {
	AddCommand(statsCmd)
}
