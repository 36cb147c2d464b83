// Package remotes reads and writes .embr/remotes/<name>, the record the
// CLI surface's `remote add|remove|list` command needs but spec.md never
// gives a storage format for: a small INI file per remote naming its url
// and, optionally, the environment variable holding its auth token.
package remotes

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/repoconfig"
)

// Remote is one named remote's record.
type Remote struct {
	Name    string
	URL     string
	AuthEnv string
}

// Manager operates on .embr/remotes/.
type Manager struct {
	dir string
}

// New returns a Manager rooted at the given .embr directory.
func New(embrDir string) *Manager {
	return &Manager{dir: filepath.Join(embrDir, "remotes")}
}

func (m *Manager) path(name string) string { return filepath.Join(m.dir, name) }

// Add writes (or overwrites) a remote record.
func (m *Manager) Add(name, url, authEnv string) error {
	const op = "remotes.Add"
	if name == "" || url == "" {
		return ebterr.New(op, ebterr.KindInvalidInput, "remote add requires a name and a url")
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	ini := repoconfig.New()
	s := ini.Section("remote", "")
	s.Set("url", url)
	if authEnv != "" {
		s.Set("auth_env", authEnv)
	}

	tmp, err := os.CreateTemp(m.dir, "tmp-remote-*")
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(ini.BytesNoHeader()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	if err := os.Rename(tmpPath, m.path(name)); err != nil {
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return nil
}

// Remove deletes a remote record. Missing records are tolerated.
func (m *Manager) Remove(name string) error {
	const op = "remotes.Remove"
	if err := os.Remove(m.path(name)); err != nil && !os.IsNotExist(err) {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return nil
}

// Get reads a single remote's record.
func (m *Manager) Get(name string) (*Remote, error) {
	const op = "remotes.Get"
	data, err := os.ReadFile(m.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ebterr.New(op, ebterr.KindNotFound, "no such remote: "+name)
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	ini, err := repoconfig.Parse(data)
	if err != nil {
		return nil, err
	}
	s := ini.Section("remote", "")
	url, _ := s.Get("url")
	authEnv, _ := s.Get("auth_env")
	return &Remote{Name: name, URL: url, AuthEnv: authEnv}, nil
}

// List enumerates every remote record, sorted by name.
func (m *Manager) List() ([]Remote, error) {
	const op = "remotes.List"
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	var out []Remote
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		r, err := m.Get(e.Name())
		if err != nil {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
