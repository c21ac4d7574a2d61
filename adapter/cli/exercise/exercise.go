package exercise

import (
	"github.com/spf13/cobra"
)

// Cmd is the exercise command group
var Cmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage the exercise catalog",
	Long:  `List built-in exercises and add or remove your own custom ones.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
}
