package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var remoteAuthEnv string

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage remote records",
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a remote",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		return r.Remotes.Add(args[0], args[1], remoteAuthEnv)
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		return r.Remotes.Remove(args[0])
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		list, err := r.Remotes.List()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()
		for _, rem := range list {
			fmt.Fprintf(w, "%s\t%s\n", rem.Name, rem.URL)
		}
		return nil
	},
}

func init() {
	remoteAddCmd.Flags().StringVar(&remoteAuthEnv, "auth-env", "", "environment variable holding this remote's auth token")
	remoteCmd.AddCommand(remoteAddCmd, remoteRemoveCmd, remoteListCmd)
	rootCmd.AddCommand(remoteCmd)
}
