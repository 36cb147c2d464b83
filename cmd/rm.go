package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rmSet string

var rmCmd = &cobra.Command{
	Use:   "rm <source>",
	Short: "Stop tracking a source file in a set (objects survive for gc to consider)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		set, err := resolveSet(r, rmSet)
		if err != nil {
			return err
		}

		if err := r.Sets.RemoveIndexEntry(set, args[0]); err != nil {
			return err
		}
		models, err := r.Sets.ListModels(set)
		if err != nil {
			return err
		}
		for _, model := range models {
			if err := r.Sets.RemoveModelRef(set, model, args[0]); err != nil {
				return err
			}
		}
		refPath := filepath.Join(r.Sets.RefsDir(set), filepath.FromSlash(args[0]))
		if err := os.Remove(refPath); err != nil && !os.IsNotExist(err) {
			return err
		}

		fmt.Println("removed", args[0], "from set", set)
		return nil
	},
}

func init() {
	rmCmd.Flags().StringVar(&rmSet, "set", "", "set to remove from (default: current)")
	rootCmd.AddCommand(rmCmd)
}
