package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var modelCmd = &cobra.Command{
	Use:   "model [name]",
	Short: "Show or set the repository's default embedding model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			model := r.Config.DefaultModel()
			if model == "" {
				fmt.Println("(no default model set)")
				return nil
			}
			fmt.Println(model)
			return nil
		}
		r.Config.SetDefaultModel(args[0])
		return r.Config.Save(filepath.Join(r.EmbrDir, "config"))
	},
}

func init() {
	rootCmd.AddCommand(modelCmd)
}
