package repoconfig

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// RepoConfig is the typed view over .embr/config.
type RepoConfig struct {
	ini *INI
}

// Default returns the config written by `eb init`: core.version = "1",
// storage.compression_level = codec.DefaultLevel, git.enabled = "true".
func Default(model string) *RepoConfig {
	c := &RepoConfig{ini: New()}
	c.ini.Section("core", "").Set("version", "1")
	if model != "" {
		c.ini.Section("core", "").Set("model", model)
	}
	c.ini.Section("storage", "").Set("compression_level", "9")
	c.ini.Section("git", "").Set("enabled", "true")
	return c
}

// Load reads .embr/config from path.
func Load(path string) (*RepoConfig, error) {
	const op = "repoconfig.Load"
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ebterr.Wrap(op, ebterr.KindNotInitialized, err)
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	ini, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &RepoConfig{ini: ini}, nil
}

// Save atomically writes the config to path via temp-file-plus-rename.
func (c *RepoConfig) Save(path string) error {
	const op = "repoconfig.Save"
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmp, err := os.CreateTemp(dir, "tmp-config-*")
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(c.ini.Bytes()); err != nil {
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

// CompressionLevel returns [storage] compression_level, defaulting to 9.
func (c *RepoConfig) CompressionLevel() int {
	v := c.ini.Section("storage", "").GetDefault("compression_level", "9")
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 9
	}
	return n
}

// DefaultModel returns [core] model, or "" if unset.
func (c *RepoConfig) DefaultModel() string {
	v, _ := c.ini.Section("core", "").Get("model")
	return v
}

// SetDefaultModel sets [core] model.
func (c *RepoConfig) SetDefaultModel(model string) {
	c.ini.Section("core", "").Set("model", model)
}

// GitEnabled returns [git] enabled, defaulting to true.
func (c *RepoConfig) GitEnabled() bool {
	return c.ini.Section("git", "").GetDefault("enabled", "true") != "false"
}

// SetGitEnabled sets [git] enabled.
func (c *RepoConfig) SetGitEnabled(enabled bool) {
	if enabled {
		c.ini.Section("git", "").Set("enabled", "true")
	} else {
		c.ini.Section("git", "").Set("enabled", "false")
	}
}

// InstalledHooks lists the hook names recorded under repeatable
// [git "hooks.<name>"] sections.
func (c *RepoConfig) InstalledHooks() []string {
	var names []string
	for _, s := range c.ini.Sections("git") {
		const prefix = "hooks."
		if len(s.Sub()) > len(prefix) && s.Sub()[:len(prefix)] == prefix {
			names = append(names, s.Sub()[len(prefix):])
		}
	}
	return names
}

// RecordHookInstalled marks hookName as installed, with the given
// template path for reference.
func (c *RepoConfig) RecordHookInstalled(hookName, templatePath string) {
	c.ini.Section("git", "hooks."+hookName).Set("installed", "true")
	c.ini.Section("git", "hooks."+hookName).Set("template", templatePath)
}

// RawINI exposes the underlying document for callers (e.g. `eb config`)
// that need generic get/set access by section/key.
func (c *RepoConfig) RawINI() *INI { return c.ini }
