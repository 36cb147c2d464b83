package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/gc"
)

var (
	gcDryRun     bool
	gcPrune      string
	gcNoPrune    bool
	gcAggressive bool
)

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Remove unreferenced objects older than the prune expiry",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}

		expire := gcPrune
		if gcNoPrune {
			expire = "never"
		}

		result, err := gc.Run(r.EmbrDir, r.Store, r.Sets, gc.Options{
			PruneExpire: expire,
			Aggressive:  gcAggressive,
			DryRun:      gcDryRun,
		})
		if err != nil {
			return err
		}
		if result.Skipped {
			fmt.Println("gc: prune_expire=never, nothing to do")
			return nil
		}

		verb := "removed"
		if gcDryRun {
			verb = "would remove"
		}
		fmt.Printf("gc: %s %d objects, kept %d referenced or unexpired\n", verb, result.ObjectsRemoved, result.ObjectsKept)
		return nil
	},
}

func init() {
	gcCmd.Flags().BoolVar(&gcDryRun, "dry-run", false, "report what would be removed without deleting")
	gcCmd.Flags().StringVar(&gcPrune, "prune", "", `prune expiry: "never", "now", "<N>.<unit>.ago" (default: two weeks ago)`)
	gcCmd.Flags().BoolVar(&gcNoPrune, "no-prune", false, "equivalent to --prune=never")
	gcCmd.Flags().BoolVar(&gcAggressive, "aggressive", false, "declared flag, no additional behavior")
	rootCmd.AddCommand(gcCmd)
}
