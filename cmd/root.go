package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/config"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/repo"
)

var (
	embrDirFlag string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "eb",
	Short: "Version control for machine-learned vector embeddings",
	Long: `EmbeddingBridge (eb) is a Git-analogous version control engine for
vector embeddings: a content-addressed object store, branch-like
"sets", hash resolution, a Parquet interchange codec, and push/pull
sync against remote object stores.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&embrDirFlag, "config", "C", "", "repository directory (overrides "+repo.EnvDir+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func debugEnabled(settings *config.Settings) bool {
	return verbose || settings.Debug
}
