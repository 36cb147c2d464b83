package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch HEAD to a different set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		if err := r.Sets.Switch(args[0]); err != nil {
			return err
		}
		fmt.Println("Switched to set", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(switchCmd)
}
