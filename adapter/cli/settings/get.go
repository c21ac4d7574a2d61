package settings

import (
	"fmt"

	"github.com/activepause/activepause/adapter/cli"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Scheduler == nil {
			fmt.Println("Settings require a database connection.")
			return nil
		}

		fmt.Printf("work-interval:   %d minutes\n", int(app.Scheduler.Interval().Minutes()))
		fmt.Printf("break-duration:  %d minutes\n", app.BreakDurationMinutes)
		return nil
	},
}
