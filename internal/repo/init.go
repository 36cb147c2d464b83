package repo

import (
	"os"
	"path/filepath"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/repoconfig"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
)

// InitOptions configures `eb init`.
type InitOptions struct {
	Force bool
	NoGit bool
	Model string
}

// Init creates the full on-disk layout under path/.embr: objects/,
// objects/temp/, the metadata/ scaffold from the end-to-end "init"
// scenario, HEAD pointing at main, the repository config, and the
// default set's own directory. Force allows re-running Init against an
// already-initialized path.
func Init(path string, opts InitOptions) error {
	const op = "repo.Init"

	embrDir := filepath.Join(path, DirName)
	if info, err := os.Stat(embrDir); err == nil && info.IsDir() && !opts.Force {
		return ebterr.New(op, ebterr.KindAlreadyExists, "repository already initialized at "+embrDir)
	}

	for _, sub := range []string{
		"objects",
		"objects/temp",
		"metadata",
		"metadata/files",
		"metadata/models",
		"metadata/versions",
		"remotes",
	} {
		if err := os.MkdirAll(filepath.Join(embrDir, sub), 0o755); err != nil {
			return ebterr.Wrap(op, ebterr.KindFileIO, err)
		}
	}

	cfg := repoconfig.Default(opts.Model)
	if opts.NoGit {
		cfg.SetGitEnabled(false)
	}
	if err := cfg.Save(filepath.Join(embrDir, "config")); err != nil {
		return err
	}

	sets := setmgr.New(embrDir)
	if !sets.Exists(setmgr.DefaultSet) {
		if err := sets.Create(setmgr.DefaultSet, "", ""); err != nil {
			return err
		}
	}
	if err := sets.Switch(setmgr.DefaultSet); err != nil {
		return err
	}
	if err := sets.EnsureWorkingFiles(setmgr.DefaultSet); err != nil {
		return err
	}

	store := objectstore.Open(embrDir)
	return store.EnsureLayout()
}
