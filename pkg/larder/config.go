// Config loading for larder projects. Scalar settings go through viper;
// the data catalog subtree is re-read with yaml.v3 so key case and
// free-form leaf fields survive verbatim.
package larder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fathomdata/larder/internal/paths"
	"github.com/fathomdata/larder/pkg/types"
)

// Config keys in larder.yaml.
const (
	cfgKeyProjectRoot = "project_root"
	cfgKeyStore       = "store"
	cfgKeyCacheDir    = "cache_dir"
	cfgKeyCacheTTL    = "cache_ttl_hours"
	cfgKeyKeyEnv      = "key_env"
	cfgKeyData        = "data"
)

// DefaultConfigYAML is the content written to larder.yaml on first run.
const DefaultConfigYAML = `# Larder project configuration

# Default cache time-to-live in hours; 0 means cache entries never expire.
cache_ttl_hours: 0

# Environment variable holding the encryption passphrase.
key_env: LARDER_KEY

# Data catalog. Leaves are a bare path or a map with path/type/delimiter/
# locked/encrypted fields, for example:
#
# data:
#   inputs:
#     raw:
#       survey: data/raw/survey.csv
#       codebook:
#         path: data/raw/codebook.xlsx
#         locked: true
data: {}
`

// LoadConfig reads larder.yaml from configDir and resolves it into a
// Config anchored at projectRoot. A missing config file is not an error:
// defaults apply and the catalog is empty. A .env file at the project root
// is loaded into the environment first, so the encryption passphrase can
// live beside the project.
func LoadConfig(configDir, projectRoot string) (types.Config, error) {
	// Missing .env is the common case and not an error.
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))

	v := viper.New()
	v.SetDefault(cfgKeyStore, paths.DefaultStorePath(configDir))
	v.SetDefault(cfgKeyCacheDir, paths.DefaultCacheDir(configDir))
	v.SetDefault(cfgKeyKeyEnv, types.DefaultKeyEnv)
	v.SetConfigName("larder")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := types.Config{
		ProjectRoot:   projectRoot,
		StorePath:     absAgainst(projectRoot, v.GetString(cfgKeyStore)),
		CacheDir:      absAgainst(projectRoot, v.GetString(cfgKeyCacheDir)),
		CacheTTLHours: v.GetFloat64(cfgKeyCacheTTL),
		KeyEnv:        v.GetString(cfgKeyKeyEnv),
	}
	if root := v.GetString(cfgKeyProjectRoot); root != "" {
		cfg.ProjectRoot = absAgainst(projectRoot, root)
	}

	tree, err := loadDataTree(paths.ConfigFile(configDir))
	if err != nil {
		return types.Config{}, err
	}
	cfg.Data = tree

	return cfg, nil
}

// loadDataTree parses the data: subtree with yaml.v3. Viper folds map keys
// to lower case, which would corrupt logical paths, so the catalog is read
// from the raw file.
func loadDataTree(configFile string) (map[string]any, error) {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", configFile, err)
	}

	var doc struct {
		Data map[string]any `yaml:"data"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFile, err)
	}
	return doc.Data, nil
}

// WriteDefaultConfig creates configDir and a default larder.yaml if the
// file does not already exist.
func WriteDefaultConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	file := paths.ConfigFile(configDir)
	if _, err := os.Stat(file); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(file, []byte(DefaultConfigYAML), 0o644)
}

// absAgainst anchors a possibly relative path at root.
func absAgainst(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
