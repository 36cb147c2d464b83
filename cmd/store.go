package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
)

var storeModel string

var storeCmd = &cobra.Command{
	Use:   "store <file>",
	Short: "Store an embedding file's payload as a content-addressed object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourcePath := args[0]
		payload, err := os.ReadFile(sourcePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", sourcePath, err)
		}

		r, err := openRepo()
		if err != nil {
			return err
		}
		set, err := r.CurrentSet()
		if err != nil {
			return err
		}

		level := r.Config.CompressionLevel()
		hash, err := r.Store.Write(payload, objectstore.ObjVector, 0, level)
		if err != nil {
			return err
		}

		model := storeModel
		if model == "" {
			model = r.Config.DefaultModel()
		}

		now := time.Now().Unix()
		pairs := []objectstore.KV{
			{Key: "source_file", Value: sourcePath},
			{Key: "timestamp", Value: fmt.Sprintf("%d", now)},
		}
		if model != "" {
			pairs = append(pairs, objectstore.KV{Key: "model", Value: model})
		}
		if err := objectstore.WriteSidecar(r.Store.MetaPath(hash), pairs); err != nil {
			return err
		}

		if err := r.Sets.UpsertIndex(set, sourcePath, hash); err != nil {
			return err
		}
		if err := r.Sets.WriteRef(set, sourcePath, hash); err != nil {
			return err
		}
		if err := r.Sets.AppendLog(set, setmgr.LogEntry{
			Timestamp: now, Hash: hash, Path: sourcePath, Model: model,
		}); err != nil {
			return err
		}
		if model != "" {
			if err := r.Sets.UpsertModelRef(set, model, sourcePath, hash); err != nil {
				return err
			}
		}

		fmt.Println(hash)
		return nil
	},
}

func init() {
	storeCmd.Flags().StringVar(&storeModel, "model", "", "model name attributed to this embedding")
	rootCmd.AddCommand(storeCmd)
}
