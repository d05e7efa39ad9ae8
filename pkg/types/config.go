package types

// Config holds the resolved project settings that the core components are
// constructed with. The CLI and server build one from larder.yaml; tests
// build fixture configs directly.
type Config struct {
	// ProjectRoot anchors relative catalog paths.
	ProjectRoot string `json:"project_root" yaml:"project_root"`

	// StorePath is the location of the SQLite metadata store.
	StorePath string `json:"store" yaml:"store"`

	// CacheDir is where cache blobs live.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// CacheTTLHours is the default time-to-live for cache entries, in hours.
	// Zero or negative means entries never expire unless a TTL is given
	// per call.
	CacheTTLHours float64 `json:"cache_ttl_hours" yaml:"cache_ttl_hours"`

	// KeyEnv names the environment variable holding the encryption
	// passphrase for entries marked encrypted.
	KeyEnv string `json:"key_env" yaml:"key_env"`

	// Data is the declarative catalog tree. Leaves are either bare path
	// strings or maps with path/type/delimiter/locked/encrypted fields.
	Data map[string]any `json:"data" yaml:"data"`
}

// DefaultKeyEnv is used when Config.KeyEnv is empty.
const DefaultKeyEnv = "LARDER_KEY"

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.ProjectRoot == "" {
		return ErrProjectRootEmpty
	}
	if c.StorePath == "" {
		return ErrStorePathEmpty
	}
	if c.CacheDir == "" {
		return ErrCacheDirEmpty
	}
	return nil
}

// Key returns the environment variable name holding the encryption
// passphrase, falling back to DefaultKeyEnv.
func (c Config) Key() string {
	if c.KeyEnv != "" {
		return c.KeyEnv
	}
	return DefaultKeyEnv
}
