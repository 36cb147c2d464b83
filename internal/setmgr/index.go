package setmgr

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// IndexEntry is one line of a set's index file: the last known hash for
// a source path.
type IndexEntry struct {
	Hash string
	Path string
}

// LogEntry is one line of a set's log file: a single store event.
type LogEntry struct {
	Timestamp int64
	Hash      string
	Path      string
	Model     string
}

func (m *Manager) indexPath(set string) string       { return filepath.Join(m.setDir(set), "index") }
func (m *Manager) logPath(set string) string         { return filepath.Join(m.setDir(set), "log") }
func (m *Manager) modelRefsDir(set string) string     { return filepath.Join(m.setDir(set), "refs", "models") }
func (m *Manager) modelRefPath(set, model string) string {
	return filepath.Join(m.modelRefsDir(set), model)
}

// ReadIndex reads a set's index file, tolerating duplicate lines.
func (m *Manager) ReadIndex(set string) ([]IndexEntry, error) {
	const op = "setmgr.ReadIndex"
	f, err := os.Open(m.indexPath(set))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer f.Close()

	var entries []IndexEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), " ", 2)
		if len(fields) != 2 {
			continue
		}
		entries = append(entries, IndexEntry{Hash: fields[0], Path: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return entries, nil
}

// WriteIndex atomically rewrites the full index, deduplicating so that
// only the last entry for each path survives.
func (m *Manager) WriteIndex(set string, entries []IndexEntry) error {
	seen := make(map[string]string, len(entries))
	var order []string
	for _, e := range entries {
		if _, ok := seen[e.Path]; !ok {
			order = append(order, e.Path)
		}
		seen[e.Path] = e.Hash
	}

	var buf strings.Builder
	for _, path := range order {
		buf.WriteString(seen[path])
		buf.WriteByte(' ')
		buf.WriteString(path)
		buf.WriteByte('\n')
	}
	return writeFileAtomic(m.indexPath(set), []byte(buf.String()))
}

// RemoveIndexEntry rewrites the index with every entry for path removed,
// used by `eb rm` to stop tracking a source without touching the object
// store itself.
func (m *Manager) RemoveIndexEntry(set, path string) error {
	entries, err := m.ReadIndex(set)
	if err != nil {
		return err
	}
	var kept []IndexEntry
	for _, e := range entries {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	return m.WriteIndex(set, kept)
}

// RemoveModelRef deletes path's entry from refs/models/<model>, if any.
func (m *Manager) RemoveModelRef(set, model, path string) error {
	entries, err := m.ReadModelRef(set, model)
	if err != nil {
		return err
	}
	var buf strings.Builder
	for _, e := range entries {
		if e.Path == path {
			continue
		}
		buf.WriteString(e.Hash)
		buf.WriteByte(' ')
		buf.WriteString(e.Path)
		buf.WriteByte('\n')
	}
	return writeFileAtomic(m.modelRefPath(set, model), []byte(buf.String()))
}

// UpsertIndex rewrites the index with hash recorded for path, replacing
// any prior entry for that path.
func (m *Manager) UpsertIndex(set, path, hash string) error {
	entries, err := m.ReadIndex(set)
	if err != nil {
		return err
	}
	entries = append(entries, IndexEntry{Hash: hash, Path: path})
	return m.WriteIndex(set, entries)
}

// AppendLog appends one store event to a set's log file.
func (m *Manager) AppendLog(set string, entry LogEntry) error {
	const op = "setmgr.AppendLog"
	dir := m.setDir(set)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	f, err := os.OpenFile(m.logPath(set), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer f.Close()

	line := fmt.Sprintf("%d %s %s %s\n", entry.Timestamp, entry.Hash, entry.Path, entry.Model)
	if _, err := f.WriteString(line); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return nil
}

// ReadLog reads a set's log file in append (chronological) order.
func (m *Manager) ReadLog(set string) ([]LogEntry, error) {
	const op = "setmgr.ReadLog"
	f, err := os.Open(m.logPath(set))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer f.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), " ", 4)
		if len(fields) != 4 {
			continue
		}
		ts, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LogEntry{Timestamp: ts, Hash: fields[1], Path: fields[2], Model: fields[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return entries, nil
}

// ReadModelRef reads refs/models/<model>'s entries (lines "<hash> <path>").
func (m *Manager) ReadModelRef(set, model string) ([]IndexEntry, error) {
	const op = "setmgr.ReadModelRef"
	f, err := os.Open(m.modelRefPath(set, model))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer f.Close()

	var entries []IndexEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), " ", 2)
		if len(fields) != 2 {
			continue
		}
		entries = append(entries, IndexEntry{Hash: fields[0], Path: fields[1]})
	}
	return entries, scanner.Err()
}

// UpsertModelRef rewrites refs/models/<model>, replacing any prior entry
// for path with hash (spec: "at most one line per (source_path, model)").
func (m *Manager) UpsertModelRef(set, model, path, hash string) error {
	entries, err := m.ReadModelRef(set, model)
	if err != nil {
		return err
	}

	seen := make(map[string]string, len(entries)+1)
	var order []string
	for _, e := range entries {
		if _, ok := seen[e.Path]; !ok {
			order = append(order, e.Path)
		}
		seen[e.Path] = e.Hash
	}
	if _, ok := seen[path]; !ok {
		order = append(order, path)
	}
	seen[path] = hash

	var buf strings.Builder
	for _, p := range order {
		buf.WriteString(seen[p])
		buf.WriteByte(' ')
		buf.WriteString(p)
		buf.WriteByte('\n')
	}
	return writeFileAtomic(m.modelRefPath(set, model), []byte(buf.String()))
}

// ListModels enumerates the model names with a refs/models/<model> file.
func (m *Manager) ListModels(set string) ([]string, error) {
	entries, err := os.ReadDir(m.modelRefsDir(set))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ebterr.Wrap("setmgr.ListModels", ebterr.KindFileIO, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// EnsureWorkingFiles creates empty index/log/refs-models files for a set
// if they do not already exist, used by Pull before reconstruction.
func (m *Manager) EnsureWorkingFiles(set string) error {
	if err := os.MkdirAll(m.modelRefsDir(set), 0o755); err != nil {
		return ebterr.Wrap("setmgr.EnsureWorkingFiles", ebterr.KindFileIO, err)
	}
	if _, err := os.Stat(m.indexPath(set)); os.IsNotExist(err) {
		if err := writeFileAtomic(m.indexPath(set), nil); err != nil {
			return err
		}
	}
	if _, err := os.Stat(m.logPath(set)); os.IsNotExist(err) {
		f, err := os.OpenFile(m.logPath(set), os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return ebterr.Wrap("setmgr.EnsureWorkingFiles", ebterr.KindFileIO, err)
		}
		f.Close()
	}
	return nil
}

// IndexPath, LogPath, ModelRefsDir expose the on-disk locations for the
// reference resolver and sync machinery.
func (m *Manager) IndexPath(set string) string    { return m.indexPath(set) }
func (m *Manager) LogPath(set string) string      { return m.logPath(set) }
func (m *Manager) ModelRefsDir(set string) string { return m.modelRefsDir(set) }
