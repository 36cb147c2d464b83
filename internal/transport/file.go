package transport

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// fileTransport is the local-filesystem driver, used by tests and any
// remote addressed as file:///some/dir.
type fileTransport struct {
	root string
}

func newFileTransport(u *url.URL) *fileTransport {
	root := u.Path
	if root == "" {
		root = u.Opaque
	}
	return &fileTransport{root: root}
}

func (t *fileTransport) Connect() error {
	const op = "transport.file.Connect"
	if err := os.MkdirAll(t.root, 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return nil
}

func (t *fileTransport) path(remoteKey string) string {
	return filepath.Join(t.root, filepath.FromSlash(remoteKey))
}

func (t *fileTransport) SendData(remoteKey string, buf []byte) error {
	const op = "transport.file.SendData"
	path := t.path(remoteKey)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-send-*")
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
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

func (t *fileTransport) ReceiveData(remoteKey string) ([]byte, error) {
	const op = "transport.file.ReceiveData"
	data, err := os.ReadFile(t.path(remoteKey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ebterr.Wrap(op, ebterr.KindNotFound, err)
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return data, nil
}

func (t *fileTransport) ListFiles(prefix string) ([]string, error) {
	const op = "transport.file.ListFiles"
	prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/")

	var keys []string
	err := filepath.WalkDir(t.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		key := keyFor(t.root, path)
		if prefix == "" || key == prefix || strings.HasPrefix(key, prefix+"/") {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return keys, nil
}

func (t *fileTransport) DeleteFiles(keys []string) error {
	const op = "transport.file.DeleteFiles"
	for _, key := range keys {
		if err := os.Remove(t.path(key)); err != nil && !os.IsNotExist(err) {
			return ebterr.Wrap(op, ebterr.KindFileIO, err)
		}
	}
	return nil
}

func (t *fileTransport) Close() error { return nil }

func keyFor(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
