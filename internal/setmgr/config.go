package setmgr

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// newSetConfig renders a set's config file: name=, created=, and
// optionally description=/base=.
func newSetConfig(name, description, base string) []byte {
	var buf bytes.Buffer
	buf.WriteString("name=" + name + "\n")
	buf.WriteString("created=" + strconv.FormatInt(time.Now().Unix(), 10) + "\n")
	if description != "" {
		buf.WriteString("description=" + description + "\n")
	}
	if base != "" {
		buf.WriteString("base=" + base + "\n")
	}
	return buf.Bytes()
}

// readSetConfig parses a set's config file into a plain key/value map.
func readSetConfig(path string) (map[string]string, error) {
	const op = "setmgr.readSetConfig"
	f, err := os.Open(path)
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		out[line[:eq]] = line[eq+1:]
	}
	return out, scanner.Err()
}

// SetDescription rewrites a set's config file's description key,
// preserving its other keys.
func (m *Manager) SetDescription(name, description string) error {
	const op = "setmgr.SetDescription"
	if !m.Exists(name) {
		return ebterr.New(op, ebterr.KindNotFound, "no such set: "+name)
	}
	cfg, err := readSetConfig(m.configPath(name))
	if err != nil {
		return err
	}
	cfg["description"] = description

	var buf bytes.Buffer
	for _, k := range []string{"name", "created", "description", "base"} {
		if v, ok := cfg[k]; ok && v != "" {
			buf.WriteString(k + "=" + v + "\n")
		}
	}
	return writeFileAtomic(m.configPath(name), buf.Bytes())
}

func writeFileAtomic(path string, data []byte) error {
	const op = "setmgr.writeFileAtomic"
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return nil
}

func trimNewline(s string) string {
	return strings.TrimRight(s, "\r\n")
}
