package config

// Settings is the tool-level configuration loaded once at CLI startup:
// defaults and environment overrides independent of any single
// repository's .embr/config (see internal/repoconfig for that).
type Settings struct {
	Debug bool `koanf:"debug"`

	// DefaultCompressionLevel is loaded from the environment but not
	// read by repository creation: a new repository's [storage]
	// compression_level is always written as repoconfig.Default's 9.
	DefaultCompressionLevel int `koanf:"compression_level"`

	// DefaultRemote is the default offered by the init wizard's remote
	// prompt; push and pull always take the remote as an argument.
	DefaultRemote string `koanf:"default_remote"`

	// AuthToken/AuthUser/AuthPassword mirror EB_AUTH_TOKEN,
	// EB_AUTH_USER, EB_AUTH_PASSWORD, read by transport drivers.
	AuthToken    string `koanf:"auth_token"`
	AuthUser     string `koanf:"auth_user"`
	AuthPassword string `koanf:"auth_password"`
}
