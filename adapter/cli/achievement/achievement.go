package achievement

import (
	"github.com/spf13/cobra"
)

// Cmd is the achievement command group
var Cmd = &cobra.Command{
	Use:   "achievement",
	Short: "View achievements",
	Long:  `Browse the achievement catalog and see which ones you have unlocked.`,
}

func init() {
	Cmd.AddCommand(listCmd)
}
