package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/config"
)

func TestInitCreatesExpectedLayout(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, InitOptions{Model: "text-embedding-3-small"}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	embrDir := filepath.Join(dir, DirName)
	for _, want := range []string{
		"objects",
		"objects/temp",
		"metadata",
		"metadata/files",
		"metadata/models",
		"metadata/versions",
		"sets/main/config",
		"HEAD",
		"config",
	} {
		if _, err := os.Stat(filepath.Join(embrDir, want)); err != nil {
			t.Fatalf("expected %s to exist: %v", want, err)
		}
	}

	head, err := os.ReadFile(filepath.Join(embrDir, "HEAD"))
	if err != nil {
		t.Fatalf("reading HEAD: %v", err)
	}
	if string(head) != "main" {
		t.Fatalf("HEAD = %q, want %q", head, "main")
	}

	cfgData, err := os.ReadFile(filepath.Join(embrDir, "config"))
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if len(cfgData) < len("# EmbeddingBridge config file") {
		t.Fatalf("config file too short: %q", cfgData)
	}
	if string(cfgData[:len("# EmbeddingBridge config file")]) != "# EmbeddingBridge config file" {
		t.Fatalf("config file missing expected header: %q", cfgData)
	}
}

func TestInitRefusesReinitWithoutForce(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, InitOptions{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := Init(dir, InitOptions{}); err == nil {
		t.Fatal("expected second Init without Force to fail")
	}
	if err := Init(dir, InitOptions{Force: true}); err != nil {
		t.Fatalf("Init with Force should succeed: %v", err)
	}
}

func TestOpenDiscoversAndComposes(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, InitOptions{}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	r, err := Open(dir, config.DefaultSettings())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	current, err := r.CurrentSet()
	if err != nil {
		t.Fatalf("CurrentSet: %v", err)
	}
	if current != "main" {
		t.Fatalf("CurrentSet = %q, want main", current)
	}
}

func TestDiscoverWalksUpward(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, InitOptions{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	nested := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	found, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := filepath.Join(dir, DirName)
	if found != want {
		t.Fatalf("Discover = %q, want %q", found, want)
	}
}

func TestDiscoverHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, InitOptions{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	embrDir := filepath.Join(dir, DirName)

	t.Setenv(EnvDir, embrDir)
	found, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if found != embrDir {
		t.Fatalf("Discover = %q, want %q", found, embrDir)
	}
}
