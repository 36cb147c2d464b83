package repo

import (
	"path/filepath"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/config"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/gc"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/refresolver"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/remotes"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/repoconfig"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/transport"
)

// Repository wires together every component a CLI command needs: the
// object store, the set manager, the reference resolver over both, the
// remote registry, the repository's own .embr/config, and tool-level
// settings. The Parquet transformer and GC sweep are stateless/one-shot
// and invoked directly by callers (internal/parquet, internal/gc.Run)
// rather than held here.
type Repository struct {
	Root     string // directory containing .embr
	EmbrDir  string
	Settings *config.Settings

	Config  *repoconfig.RepoConfig
	Store   *objectstore.Store
	Sets    *setmgr.Manager
	Refs    *refresolver.Resolver
	Remotes *remotes.Manager
}

// Open discovers (or is given, via EB_DIR) a repository root, loads its
// .embr/config, and composes every dependent component.
func Open(startPath string, settings *config.Settings) (*Repository, error) {
	const op = "repo.Open"

	embrDir, err := Discover(startPath)
	if err != nil {
		return nil, err
	}

	cfg, err := repoconfig.Load(filepath.Join(embrDir, "config"))
	if err != nil {
		return nil, err
	}

	sets := setmgr.New(embrDir)
	store := objectstore.Open(embrDir)
	if err := store.EnsureLayout(); err != nil {
		return nil, err
	}

	if settings == nil {
		settings, err = config.Load()
		if err != nil {
			return nil, ebterr.Wrap(op, ebterr.KindConfig, err)
		}
	}

	return &Repository{
		Root:     filepath.Dir(embrDir),
		EmbrDir:  embrDir,
		Settings: settings,
		Config:   cfg,
		Store:    store,
		Sets:     sets,
		Refs:     refresolver.New(sets, store),
		Remotes:  remotes.New(embrDir),
	}, nil
}

// OpenTransport resolves a named remote to a live transport driver,
// falling back to treating the name itself as a raw URL (e.g. a bare
// file:// path used in tests) when no remote record exists.
func (r *Repository) OpenTransport(remoteName string) (transport.Transport, error) {
	if rec, err := r.Remotes.Get(remoteName); err == nil {
		return transport.Open(rec.URL, r.Settings)
	}
	return transport.Open(remoteName, r.Settings)
}

// GCLock returns the lockfile guarding this repository's garbage
// collector sweeps.
func (r *Repository) GCLock() *gc.Lock { return gc.NewLock(r.EmbrDir) }

// CurrentSet resolves HEAD, self-healing to setmgr.DefaultSet per the
// Set Manager contract.
func (r *Repository) CurrentSet() (string, error) { return r.Sets.Current() }
