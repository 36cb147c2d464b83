package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var logSet string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the store history for a set",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		set, err := resolveSet(r, logSet)
		if err != nil {
			return err
		}

		entries, err := r.Sets.ReadLog(set)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			ts := time.Unix(e.Timestamp, 0).Format(time.RFC3339)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Hash[:minInt(12, len(e.Hash))], ts, e.Path, e.Model)
		}
		return nil
	},
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func init() {
	logCmd.Flags().StringVar(&logSet, "set", "", "set to show (default: current)")
	rootCmd.AddCommand(logCmd)
}
