package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var diffSet string

var diffCmd = &cobra.Command{
	Use:   "diff <source>",
	Short: "Show the version history of a tracked source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		set, err := resolveSet(r, diffSet)
		if err != nil {
			return err
		}

		versions, err := r.Refs.VersionHistory(set, args[0])
		if err != nil {
			return err
		}
		if len(versions) == 0 {
			fmt.Println("No history for", args[0])
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()
		for _, v := range versions {
			fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n", v.ID, v.Hash[:minInt(12, len(v.Hash))],
				time.Unix(v.Timestamp, 0).Format(time.RFC3339), v.Provider)
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffSet, "set", "", "set to inspect (default: current)")
	rootCmd.AddCommand(diffCmd)
}
