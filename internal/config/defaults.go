package config

// DefaultSettings returns the settings a fresh install starts from,
// before any EB_* environment overrides are applied.
func DefaultSettings() *Settings {
	return &Settings{
		Debug:                   false,
		DefaultCompressionLevel: 9,
		DefaultRemote:           "origin",
	}
}
