// Package repo is the composition root: it discovers or creates a
// repository's .embr directory and wires together the object store, set
// manager, reference resolver, and remote registry that the rest of the
// core depends on, mirroring how the teacher's internal/server wires db,
// vectordb, and registry into one place.
package repo

import (
	"os"
	"path/filepath"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// EnvDir is the environment variable that overrides repository root
// discovery, for tooling invoked outside a working directory.
const EnvDir = "EB_DIR"

// DirName is the on-disk directory name every repository is rooted at.
const DirName = ".embr"

// Discover locates a repository's .embr directory: EB_DIR, if set, names
// it directly; otherwise Discover walks upward from start looking for an
// .embr directory, matching Git's repository-discovery convention.
func Discover(start string) (string, error) {
	const op = "repo.Discover"

	if dir := os.Getenv(EnvDir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return "", ebterr.New(op, ebterr.KindNotInitialized, EnvDir+" does not point at a directory: "+dir)
		}
		return dir, nil
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ebterr.New(op, ebterr.KindNotInitialized, "no "+DirName+" directory found above "+start)
		}
		dir = parent
	}
}
