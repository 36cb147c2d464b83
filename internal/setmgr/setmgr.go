// Package setmgr manages named working views ("sets") inside a
// repository: HEAD, per-set config, and the refs each set owns. A set is
// analogous to a Git branch: it owns a collection of source-path ->
// hash references but shares the underlying object store with every
// other set.
package setmgr

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// DefaultSet is auto-created the first time a repository needs a set and
// none exists yet.
const DefaultSet = "main"

var nameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Manager operates on the sets rooted at <root>/.embr.
type Manager struct {
	embrDir string
}

// New returns a Manager rooted at the given .embr directory.
func New(embrDir string) *Manager { return &Manager{embrDir: embrDir} }

func (m *Manager) headPath() string     { return filepath.Join(m.embrDir, "HEAD") }
func (m *Manager) setsDir() string      { return filepath.Join(m.embrDir, "sets") }
func (m *Manager) setDir(name string) string {
	return filepath.Join(m.setsDir(), name)
}
func (m *Manager) configPath(name string) string {
	return filepath.Join(m.setDir(name), "config")
}
func (m *Manager) refsDir(name string) string {
	return filepath.Join(m.setDir(name), "refs")
}

// Info describes a set for listing.
type Info struct {
	Name      string
	Current   bool
	CreatedAt int64
}

// ValidName reports whether name matches [A-Za-z0-9._-]+.
func ValidName(name string) bool { return name != "" && nameRe.MatchString(name) }

// Exists reports whether a set directory for name is present.
func (m *Manager) Exists(name string) bool {
	info, err := os.Stat(m.setDir(name))
	return err == nil && info.IsDir()
}

// Create makes a new set directory with a config file, pointing HEAD at
// it if no HEAD exists yet.
func (m *Manager) Create(name, description, base string) error {
	const op = "setmgr.Create"
	if !ValidName(name) {
		return ebterr.New(op, ebterr.KindInvalidInput, "set name must match [A-Za-z0-9._-]+")
	}
	if m.Exists(name) {
		return ebterr.New(op, ebterr.KindAlreadyExists, "set already exists: "+name)
	}
	if err := os.MkdirAll(m.setsDir(), 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	if err := os.MkdirAll(m.refsDir(name), 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	cfg := newSetConfig(name, description, base)
	if err := writeFileAtomic(m.configPath(name), cfg); err != nil {
		return err
	}

	if _, err := os.Stat(m.headPath()); os.IsNotExist(err) {
		if err := m.Switch(name); err != nil {
			return err
		}
	}
	return nil
}

// List enumerates sets, marking the current one. In verbose mode the
// creation timestamp recorded in each set's config is populated.
func (m *Manager) List(verbose bool) ([]Info, error) {
	const op = "setmgr.List"
	entries, err := os.ReadDir(m.setsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	current, _ := m.Current()

	var out []Info
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info := Info{Name: e.Name(), Current: e.Name() == current}
		if verbose {
			if cfg, err := readSetConfig(m.configPath(e.Name())); err == nil {
				if ts, err := strconv.ParseInt(cfg["created"], 10, 64); err == nil {
					info.CreatedAt = ts
				}
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Switch rewrites HEAD to name, which must already exist.
func (m *Manager) Switch(name string) error {
	const op = "setmgr.Switch"
	if !m.Exists(name) {
		return ebterr.New(op, ebterr.KindNotFound, "no such set: "+name)
	}
	return writeFileAtomic(m.headPath(), []byte(name))
}

// Delete removes a set's config, refs, and directory. The current set
// cannot be deleted. Without force, callers are expected to have warned
// that unique-embedding detection is not performed; Delete itself does
// not inspect object references. Missing files are tolerated; a failed
// final directory removal is reported as a non-fatal warning string.
func (m *Manager) Delete(name string, force bool) (warning string, err error) {
	const op = "setmgr.Delete"
	current, _ := m.Current()
	if name == current {
		return "", ebterr.New(op, ebterr.KindInvalidInput, "cannot delete the current set")
	}
	if !m.Exists(name) {
		return "", ebterr.New(op, ebterr.KindNotFound, "no such set: "+name)
	}

	os.Remove(m.configPath(name))
	os.RemoveAll(m.refsDir(name))

	if rmErr := os.Remove(m.setDir(name)); rmErr != nil {
		return "could not remove set directory " + m.setDir(name) + ": " + rmErr.Error(), nil
	}
	return "", nil
}

// Current reads HEAD, self-healing to DefaultSet if HEAD is missing or
// names a set that no longer exists.
func (m *Manager) Current() (string, error) {
	const op = "setmgr.Current"
	data, err := os.ReadFile(m.headPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return "", ebterr.Wrap(op, ebterr.KindFileIO, err)
		}
		if err := m.Create(DefaultSet, "", ""); err != nil && !ebterr.Is(err, ebterr.KindAlreadyExists) {
			return "", err
		}
		return DefaultSet, nil
	}

	name := trimNewline(string(data))
	if !m.Exists(name) {
		if err := m.Create(DefaultSet, "", ""); err != nil && !ebterr.Is(err, ebterr.KindAlreadyExists) {
			return "", err
		}
		if err := m.Switch(DefaultSet); err != nil {
			return "", err
		}
		return DefaultSet, nil
	}
	return name, nil
}

// RefsDir exposes the refs directory for a set, for the reference
// resolver and sync machinery.
func (m *Manager) RefsDir(name string) string { return m.refsDir(name) }

// SetDir exposes a set's own directory, for index/log path construction.
func (m *Manager) SetDir(name string) string { return m.setDir(name) }
