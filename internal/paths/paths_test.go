package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProjectRoot(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		flagDir := t.TempDir()
		t.Setenv(EnvProjectRoot, t.TempDir())

		got, err := ResolveProjectRoot(flagDir)
		require.NoError(t, err)
		assert.Equal(t, flagDir, got)
	})

	t.Run("env wins over cwd", func(t *testing.T) {
		envDir := t.TempDir()
		t.Setenv(EnvProjectRoot, envDir)

		got, err := ResolveProjectRoot("")
		require.NoError(t, err)
		assert.Equal(t, envDir, got)
	})

	t.Run("falls back to cwd", func(t *testing.T) {
		t.Setenv(EnvProjectRoot, "")
		dir := t.TempDir()
		orig, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(orig) })

		got, err := ResolveProjectRoot("")
		require.NoError(t, err)
		resolved, err := filepath.EvalSymlinks(got)
		require.NoError(t, err)
		expected, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		assert.Equal(t, expected, resolved)
	})

	t.Run("relative flag is made absolute", func(t *testing.T) {
		got, err := ResolveProjectRoot("some/project")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		flagDir := t.TempDir()
		t.Setenv(EnvConfigDir, t.TempDir())

		got, err := ResolveConfigDir(flagDir, "/project")
		require.NoError(t, err)
		assert.Equal(t, flagDir, got)
	})

	t.Run("env wins over project default", func(t *testing.T) {
		envDir := t.TempDir()
		t.Setenv(EnvConfigDir, envDir)

		got, err := ResolveConfigDir("", "/project")
		require.NoError(t, err)
		assert.Equal(t, envDir, got)
	})

	t.Run("defaults under the project root", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")

		got, err := ResolveConfigDir("", "/project")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/project", DefaultConfigDirName), got)
	})
}

func TestDerivedPaths(t *testing.T) {
	configDir := filepath.Join("/project", DefaultConfigDirName)

	assert.Equal(t, filepath.Join(configDir, ConfigFileName), ConfigFile(configDir))
	assert.Equal(t, filepath.Join(configDir, DefaultStoreFileName), DefaultStorePath(configDir))
	assert.Equal(t, filepath.Join(configDir, DefaultCacheDirName), DefaultCacheDir(configDir))
}
