// Package config loads tool-level settings (EB_DEBUG, EB_AUTH_*, and
// similar) via koanf's env provider, the same layering approach the
// teacher repo used for YAML-plus-environment configuration, adapted
// here to a pure-environment source since there is no per-invocation
// config file at this layer — per-repository settings live in
// .embr/config and are handled by internal/repoconfig instead.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the environment variable prefix documented in spec.md §6.
const EnvPrefix = "EB_"

// Load builds Settings from DefaultSettings, overlaid with EB_* environment
// variables (EB_DEBUG, EB_COMPRESSION_LEVEL, EB_DEFAULT_REMOTE,
// EB_AUTH_TOKEN, EB_AUTH_USER, EB_AUTH_PASSWORD).
func Load() (*Settings, error) {
	k := koanf.New(".")
	cfg := DefaultSettings()

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading EB_* environment overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling settings: %w", err)
	}

	return cfg, nil
}
