package cmd

import (
	"fmt"
	"os"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/config"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/repo"
)

// loadSettings loads tool-level settings and applies the -C/--config
// flag as an EB_DIR override for this process.
func loadSettings() (*config.Settings, error) {
	if embrDirFlag != "" {
		os.Setenv(repo.EnvDir, embrDirFlag)
	}
	return config.Load()
}

// openRepo resolves and opens the repository rooted at (or above) the
// current directory, honoring -C/EB_DIR.
func openRepo() (*repo.Repository, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return repo.Open(cwd, settings)
}

// resolveSet returns explicitSet if non-empty, else the repository's
// current set.
func resolveSet(r *repo.Repository, explicitSet string) (string, error) {
	if explicitSet != "" {
		return explicitSet, nil
	}
	return r.CurrentSet()
}
