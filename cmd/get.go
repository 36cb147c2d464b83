package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	getSet   string
	getModel string
	getOut   string
)

var getCmd = &cobra.Command{
	Use:   "get <hash-or-source>",
	Short: "Retrieve a stored embedding's payload by hash or tracked source path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		set, err := resolveSet(r, getSet)
		if err != nil {
			return err
		}

		hash, err := r.Store.Resolve(args[0])
		if err != nil {
			if getModel != "" {
				hash, err = r.Refs.CurrentHashWithModel(set, args[0], getModel)
			} else {
				hash, err = r.Refs.CurrentHash(set, args[0])
			}
			if err != nil {
				return err
			}
		}

		payload, _, err := r.Store.Read(hash)
		if err != nil {
			return err
		}

		if getOut == "" || getOut == "-" {
			_, err := os.Stdout.Write(payload)
			return err
		}
		if err := os.WriteFile(getOut, payload, 0o644); err != nil {
			return err
		}
		fmt.Println("wrote", getOut)
		return nil
	},
}

func init() {
	getCmd.Flags().StringVar(&getSet, "set", "", "set to resolve a source path in (default: current)")
	getCmd.Flags().StringVar(&getModel, "model", "", "prefer this model's ref when resolving a source path")
	getCmd.Flags().StringVarP(&getOut, "out", "o", "", "output file path (default: stdout)")
	rootCmd.AddCommand(getCmd)
}
