// Package paths resolves the project, configuration, and cache locations.
// Larder is project-scoped: everything defaults to directories under the
// current working directory, overridable by flags and environment.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".larder"
	DefaultCacheDirName  = "cache"
	DefaultStoreFileName = "larder.db"
	ConfigFileName       = "larder.yaml"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir   = "LARDER_CONFIG_DIR"
	EnvProjectRoot = "LARDER_PROJECT_ROOT"
)

// ResolveProjectRoot returns the project root following the precedence
// chain: flag > LARDER_PROJECT_ROOT env > current working directory.
func ResolveProjectRoot(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvProjectRoot); env != "" {
		return filepath.Abs(env)
	}
	return os.Getwd()
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > LARDER_CONFIG_DIR env > {project_root}/.larder.
func ResolveConfigDir(flag, projectRoot string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return filepath.Join(projectRoot, DefaultConfigDirName), nil
}

// ConfigFile returns the larder.yaml path inside a config directory.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// DefaultStorePath returns the metadata store location inside a config
// directory.
func DefaultStorePath(configDir string) string {
	return filepath.Join(configDir, DefaultStoreFileName)
}

// DefaultCacheDir returns the blob directory inside a config directory.
func DefaultCacheDir(configDir string) string {
	return filepath.Join(configDir, DefaultCacheDirName)
}
