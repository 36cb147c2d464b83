package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ebconfig "github.com/ProgramComputer/EmbeddingBridge-sub001/internal/config"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/repo"
)

var (
	initForce bool
	initNoGit bool
	initModel string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an embedding repository in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		model := initModel
		if model == "" {
			answers, err := ebconfig.RunInitWizard()
			if err != nil {
				return err
			}
			model = answers.Model
		}

		if err := repo.Init(cwd, repo.InitOptions{Force: initForce, NoGit: initNoGit, Model: model}); err != nil {
			return err
		}
		fmt.Println("Initialized empty embedding repository in", cwd+"/"+repo.DirName)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "reinitialize an existing repository")
	initCmd.Flags().BoolVar(&initNoGit, "no-git", false, "do not mark git hook integration as enabled")
	initCmd.Flags().StringVarP(&initModel, "model", "m", "", "default embedding model (skips the wizard)")
	rootCmd.AddCommand(initCmd)
}
