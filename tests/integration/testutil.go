// Package integration provides CLI integration tests for larder.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// larderBin is the path to the built larder binary.
	larderBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the module root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetLarderBin sets the path to the larder binary (called from TestMain).
func SetLarderBin(path string) {
	larderBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated project directory with its own config dir.
type TestEnv struct {
	t         *testing.T
	Root      string
	ConfigDir string
}

// NewTestEnv creates an isolated project rooted in a temp directory.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build larder: %v", buildErr)
	}
	if larderBin == "" {
		t.Fatal("larder binary not built (larderBin is empty)")
	}

	root := t.TempDir()
	return &TestEnv{
		t:         t,
		Root:      root,
		ConfigDir: filepath.Join(root, ".larder"),
	}
}

// WriteConfig replaces the project's larder.yaml.
func (e *TestEnv) WriteConfig(yaml string) {
	e.t.Helper()
	if err := os.MkdirAll(e.ConfigDir, 0o755); err != nil {
		e.t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.ConfigDir, "larder.yaml"), []byte(yaml), 0o644); err != nil {
		e.t.Fatalf("failed to write config: %v", err)
	}
}

// WriteDataFile writes a file at a project-relative path, creating parents.
func (e *TestEnv) WriteDataFile(relPath, content string) {
	e.t.Helper()
	path := filepath.Join(e.Root, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("failed to create data dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write data file: %v", err)
	}
}

// CmdResult holds the result of a larder command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunLarder executes the larder CLI with the given arguments.
func (e *TestEnv) RunLarder(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--root", e.Root, "--config-dir", e.ConfigDir}, args...)
	cmd := exec.Command(larderBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		e.t.Fatalf("failed to run larder %v: %v", args, err)
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunLarder executes larder and fails the test on a nonzero exit.
func (e *TestEnv) MustRunLarder(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunLarder(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("larder %v failed (exit %d)\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON decodes command output into a typed value.
func ParseJSON[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("failed to parse JSON output: %v\noutput: %s", err, raw)
	}
	return v
}
