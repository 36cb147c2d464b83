package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/progress"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/sync"
)

var pushForce bool

var pushCmd = &cobra.Command{
	Use:   "push <remote> [set]",
	Short: "Push a set's embeddings to a remote object store",
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

		result, err := sync.Push(tr, r.Sets, r.Store, set, pushForce, progress.NewReporter("push"))
		if err != nil {
			return err
		}

		fmt.Printf("pushed %d/%d objects to %s (set %s)\n", result.Succeeded, result.Attempted, args[0], set)
		for _, failure := range result.Failed {
			fmt.Println("  failed:", failure)
		}
		return nil
	},
}

func init() {
	pushCmd.Flags().BoolVar(&pushForce, "force", false, "delete remote objects absent from the local log")
	rootCmd.AddCommand(pushCmd)
}
