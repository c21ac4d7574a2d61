package settings

import (
	"github.com/spf13/cobra"
)

// Cmd is the settings command group
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change settings",
	Long:  `Show the current reminder settings or change them. Changes are written to .env.`,
}

func init() {
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
}
