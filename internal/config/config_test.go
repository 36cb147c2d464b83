package config

import (
	"os"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	cfg := DefaultSettings()
	if cfg.Debug {
		t.Error("expected Debug false by default")
	}
	if cfg.DefaultCompressionLevel != 9 {
		t.Errorf("DefaultCompressionLevel = %d, want 9", cfg.DefaultCompressionLevel)
	}
	if cfg.DefaultRemote != "origin" {
		t.Errorf("DefaultRemote = %q, want origin", cfg.DefaultRemote)
	}
}

func TestLoadWithNoEnvOverridesReturnsDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultRemote != "origin" {
		t.Errorf("DefaultRemote = %q, want origin", cfg.DefaultRemote)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	os.Setenv("EB_DEBUG", "true")
	os.Setenv("EB_DEFAULT_REMOTE", "backup")
	os.Setenv("EB_AUTH_TOKEN", "secret-token")
	defer os.Unsetenv("EB_DEBUG")
	defer os.Unsetenv("EB_DEFAULT_REMOTE")
	defer os.Unsetenv("EB_AUTH_TOKEN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("expected EB_DEBUG=true to set Debug")
	}
	if cfg.DefaultRemote != "backup" {
		t.Errorf("DefaultRemote = %q, want backup", cfg.DefaultRemote)
	}
	if cfg.AuthToken != "secret-token" {
		t.Errorf("AuthToken = %q, want secret-token", cfg.AuthToken)
	}
}
