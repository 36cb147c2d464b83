package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/repo"
)

var (
	setVerbose     bool
	setDescription string
	setDelete      bool
	setForce       bool
)

var setCmd = &cobra.Command{
	Use:   "set [name]",
	Short: "Create, list, or delete sets (branch-like working views)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		}

		switch {
		case setDelete:
			if name == "" {
				return fmt.Errorf("set --delete requires a set name")
			}
			warning, err := r.Sets.Delete(name, setForce)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, "warning:", warning)
			}
			if !setForce {
				fmt.Fprintln(os.Stderr, "warning: unique-embedding detection was not performed before deletion")
			}
			return nil

		case setDescription != "":
			target := name
			if target == "" {
				target, err = r.CurrentSet()
				if err != nil {
					return err
				}
			}
			return r.Sets.SetDescription(target, setDescription)

		case name != "":
			return r.Sets.Create(name, "", "")

		default:
			return listSets(r, setVerbose)
		}
	},
}

func listSets(r *repo.Repository, verbose bool) error {
	infos, err := r.Sets.List(verbose)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, info := range infos {
		marker := " "
		if info.Current {
			marker = "*"
		}
		if verbose && info.CreatedAt != 0 {
			fmt.Fprintf(w, "%s %s\tcreated %s\n", marker, info.Name, time.Unix(info.CreatedAt, 0).Format(time.RFC3339))
		} else {
			fmt.Fprintf(w, "%s %s\n", marker, info.Name)
		}
	}
	return nil
}

func init() {
	setCmd.Flags().BoolVarP(&setVerbose, "verbose", "v", false, "show creation date")
	setCmd.Flags().StringVarP(&setDescription, "description", "d", "", "update the set's description")
	setCmd.Flags().BoolVar(&setDelete, "delete", false, "delete the named set")
	setCmd.Flags().BoolVarP(&setForce, "force", "f", false, "suppress the unreferenced-embedding warning on delete")
	rootCmd.AddCommand(setCmd)
}
