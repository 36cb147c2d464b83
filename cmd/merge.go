package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
)

var mergeStrategy string

var mergeCmd = &cobra.Command{
	Use:   "merge <source> [target]",
	Short: "Merge one set's refs into another",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}

		var target string
		if len(args) == 2 {
			target = args[1]
		} else {
			target, err = r.CurrentSet()
			if err != nil {
				return err
			}
		}

		copied, err := r.Sets.Merge(args[0], target, setmgr.Strategy(mergeStrategy))
		if err != nil {
			return err
		}
		fmt.Printf("merged %d refs from %s into %s\n", copied, args[0], target)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeStrategy, "strategy", string(setmgr.StrategyUnion), "merge strategy: union (others declared, unimplemented)")
	rootCmd.AddCommand(mergeCmd)
}
