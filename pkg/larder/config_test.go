package larder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomdata/larder/internal/paths"
	"github.com/fathomdata/larder/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ".larder")

	cfg, err := LoadConfig(configDir, root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(configDir, "larder.db"), cfg.StorePath)
	assert.Equal(t, filepath.Join(configDir, "cache"), cfg.CacheDir)
	assert.Zero(t, cfg.CacheTTLHours)
	assert.Equal(t, types.DefaultKeyEnv, cfg.KeyEnv)
	assert.Nil(t, cfg.Data)
}

func TestLoadConfigFromFile(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ".larder")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	yaml := `
store: store/meta.db
cache_dir: store/blobs
cache_ttl_hours: 12.5
key_env: ANALYSIS_KEY
data:
  inputs:
    RawSurvey:
      path: data/raw/survey.csv
      delimiter: tab
      note: collected 2025-03
`
	require.NoError(t, os.WriteFile(paths.ConfigFile(configDir), []byte(yaml), 0o644))

	cfg, err := LoadConfig(configDir, root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "store", "meta.db"), cfg.StorePath)
	assert.Equal(t, filepath.Join(root, "store", "blobs"), cfg.CacheDir)
	assert.Equal(t, 12.5, cfg.CacheTTLHours)
	assert.Equal(t, "ANALYSIS_KEY", cfg.KeyEnv)

	// The catalog keeps key case and free-form leaf fields verbatim.
	inputs, ok := cfg.Data["inputs"].(map[string]any)
	require.True(t, ok)
	leaf, ok := inputs["RawSurvey"].(map[string]any)
	require.True(t, ok, "mixed-case key survives")
	assert.Equal(t, "data/raw/survey.csv", leaf["path"])
	assert.Equal(t, "collected 2025-03", leaf["note"])
}

func TestLoadConfigBadYAML(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ".larder")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(paths.ConfigFile(configDir), []byte("data: [unclosed"), 0o644))

	_, err := LoadConfig(configDir, root)
	assert.Error(t, err)
}

func TestLoadConfigDotEnv(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ".larder")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("LARDER_TEST_FROM_ENV=loaded\n"), 0o644))
	t.Setenv("LARDER_TEST_FROM_ENV", "")
	os.Unsetenv("LARDER_TEST_FROM_ENV")

	_, err := LoadConfig(configDir, root)
	require.NoError(t, err)
	assert.Equal(t, "loaded", os.Getenv("LARDER_TEST_FROM_ENV"))
}

func TestWriteDefaultConfig(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), ".larder")

	require.NoError(t, WriteDefaultConfig(configDir))
	raw, err := os.ReadFile(paths.ConfigFile(configDir))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigYAML, string(raw))

	// A second run never overwrites an edited config.
	require.NoError(t, os.WriteFile(paths.ConfigFile(configDir), []byte("cache_ttl_hours: 5\n"), 0o644))
	require.NoError(t, WriteDefaultConfig(configDir))
	raw, err = os.ReadFile(paths.ConfigFile(configDir))
	require.NoError(t, err)
	assert.Equal(t, "cache_ttl_hours: 5\n", string(raw))
}
