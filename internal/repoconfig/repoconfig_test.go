package repoconfig

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultBeginsWithHeaderComment(t *testing.T) {
	cfg := Default("text-embedding-3-small")
	out := string(cfg.RawINI().Bytes())
	if !strings.HasPrefix(out, HeaderComment) {
		t.Fatalf("config does not begin with header comment:\n%s", out)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	cfg := Default("clip-vit-b32")
	cfg.SetGitEnabled(false)
	cfg.RecordHookInstalled("pre-commit", "hooks/pre-commit.sample")

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.CompressionLevel() != 9 {
		t.Fatalf("CompressionLevel = %d, want 9", loaded.CompressionLevel())
	}
	if loaded.DefaultModel() != "clip-vit-b32" {
		t.Fatalf("DefaultModel = %q", loaded.DefaultModel())
	}
	if loaded.GitEnabled() {
		t.Fatal("expected git disabled after SetGitEnabled(false)")
	}

	hooks := loaded.InstalledHooks()
	if len(hooks) != 1 || hooks[0] != "pre-commit" {
		t.Fatalf("InstalledHooks = %v", hooks)
	}
}

func TestParseQuotedSubsection(t *testing.T) {
	data := []byte(HeaderComment + "\n[git \"hooks.pre-push\"]\n\tinstalled = true\n")
	ini, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sections := ini.Sections("git")
	if len(sections) != 1 || sections[0].Sub() != "hooks.pre-push" {
		t.Fatalf("unexpected sections: %+v", sections)
	}
}
