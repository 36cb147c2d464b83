package transport

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

func newFileTransportForTest(t *testing.T) Transport {
	t.Helper()
	tr, err := Open("file://"+filepath.ToSlash(t.TempDir()), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := tr.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return tr
}

func TestFileTransportSendReceiveRoundtrip(t *testing.T) {
	tr := newFileTransportForTest(t)
	defer tr.Close()

	if err := tr.SendData("sets/main/documents/abcd.parquet", []byte("hello")); err != nil {
		t.Fatalf("SendData: %v", err)
	}

	got, err := tr.ReceiveData("sets/main/documents/abcd.parquet")
	if err != nil {
		t.Fatalf("ReceiveData: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("ReceiveData = %q, want hello", got)
	}
}

func TestFileTransportReceiveMissingIsNotFound(t *testing.T) {
	tr := newFileTransportForTest(t)
	defer tr.Close()

	if _, err := tr.ReceiveData("missing.parquet"); !ebterr.Is(err, ebterr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestFileTransportListFilesRespectsPrefix(t *testing.T) {
	tr := newFileTransportForTest(t)
	defer tr.Close()

	if err := tr.SendData("sets/main/documents/aaaa.parquet", []byte("a")); err != nil {
		t.Fatalf("SendData: %v", err)
	}
	if err := tr.SendData("sets/main/documents/bbbb.parquet", []byte("b")); err != nil {
		t.Fatalf("SendData: %v", err)
	}
	if err := tr.SendData("sets/main/metadata.json", []byte("{}")); err != nil {
		t.Fatalf("SendData: %v", err)
	}

	keys, err := tr.ListFiles("sets/main/documents")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 {
		t.Fatalf("ListFiles = %v, want 2 entries", keys)
	}
}

func TestFileTransportDeleteFiles(t *testing.T) {
	tr := newFileTransportForTest(t)
	defer tr.Close()

	if err := tr.SendData("a.parquet", []byte("a")); err != nil {
		t.Fatalf("SendData: %v", err)
	}
	if err := tr.DeleteFiles([]string{"a.parquet"}); err != nil {
		t.Fatalf("DeleteFiles: %v", err)
	}
	if _, err := tr.ReceiveData("a.parquet"); !ebterr.Is(err, ebterr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound after delete", err)
	}
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	if _, err := Open("ftp://example.com/path", nil); !ebterr.Is(err, ebterr.KindInvalidInput) {
		t.Fatalf("err = %v, want InvalidInput", err)
	}
}
