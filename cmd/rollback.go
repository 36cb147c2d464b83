package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
)

var rollbackSet string

var rollbackCmd = &cobra.Command{
	Use:   "rollback <source> <version-id-or-hash>",
	Short: "Point a source back at an earlier version, recorded as a new store event",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		set, err := resolveSet(r, rollbackSet)
		if err != nil {
			return err
		}

		source, target := args[0], args[1]

		var hash string
		if id, err := strconv.Atoi(target); err == nil {
			versions, err := r.Refs.VersionHistory(set, source)
			if err != nil {
				return err
			}
			found := false
			for _, v := range versions {
				if v.ID == id {
					hash, found = v.Hash, true
					break
				}
			}
			if !found {
				return fmt.Errorf("no version #%d for %s", id, source)
			}
		} else {
			resolved, err := r.Store.Resolve(target)
			if err != nil {
				return err
			}
			hash = resolved
		}

		if !r.Store.Exists(hash) {
			return fmt.Errorf("object %s does not exist", hash)
		}

		now := time.Now().Unix()
		if err := r.Sets.UpsertIndex(set, source, hash); err != nil {
			return err
		}
		if err := r.Sets.WriteRef(set, source, hash); err != nil {
			return err
		}
		if err := r.Sets.AppendLog(set, setmgr.LogEntry{Timestamp: now, Hash: hash, Path: source, Model: "rollback"}); err != nil {
			return err
		}

		fmt.Println(source, "rolled back to", hash)
		return nil
	},
}

func init() {
	rollbackCmd.Flags().StringVar(&rollbackSet, "set", "", "set to roll back in (default: current)")
	rootCmd.AddCommand(rollbackCmd)
}
