package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/progress"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/sync"
)

var pullPrune bool

var pullCmd = &cobra.Command{
	Use:   "pull <remote> [set]",
	Short: "Pull a set's embeddings from a remote object store",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		var explicitSet string
		if len(args) == 2 {
			explicitSet = args[1]
		}
		set, err := resolveSet(r, explicitSet)
		if err != nil {
			return err
		}

		tr, err := r.OpenTransport(args[0])
		if err != nil {
			return err
		}
		defer tr.Close()

		result, err := sync.Pull(tr, r.Sets, r.Store, set, progress.NewReporter("pull"))
		if err != nil {
			return err
		}
		fmt.Printf("downloaded %d objects from %s (set %s)\n", result.Downloaded, args[0], set)
		if result.Rebuilt {
			fmt.Println("local index/log/refs rebuilt from remote metadata.json")
		}
		for _, failure := range result.Failed {
			fmt.Println("  failed:", failure)
		}

		if pullPrune {
			pruneResult, err := sync.Prune(tr, r.Store, set, nil)
			if err != nil {
				return err
			}
			if len(pruneResult.Removed) > 0 {
				fmt.Printf("removed %d local objects not present on the remote\n", len(pruneResult.Removed))
			} else if pruneResult.Confirmed {
				fmt.Println("nothing to prune")
			}
		}
		return nil
	},
}

func init() {
	pullCmd.Flags().BoolVar(&pullPrune, "prune", false, "remove local objects absent from the remote, after confirmation")
	rootCmd.AddCommand(pullCmd)
}
