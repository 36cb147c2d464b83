package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current set and its tracked sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		set, err := r.CurrentSet()
		if err != nil {
			return err
		}

		fmt.Println("On set", set)

		entries, err := r.Sets.ReadIndex(set)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No tracked sources.")
			return nil
		}

		fmt.Println("Tracked sources:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()
		for _, e := range entries {
			fmt.Fprintf(w, "  %s\t%s\n", e.Hash[:minInt(12, len(e.Hash))], e.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
