// CLI integration tests for larder: project scaffolding, catalog loads,
// integrity enforcement, and the computation cache, end to end through the
// built binary.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the larder binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "larder-test-*")
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}
	binPath := filepath.Join(tmpDir, "larder")
	SetLarderBin(binPath)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/larder")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		SetBuildErr(&BuildError{Err: err, Output: string(output)})
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// catalogConfig is the larder.yaml used by most tests: one plain entry and
// one locked entry.
const catalogConfig = `cache_ttl_hours: 0
data:
  inputs:
    survey: data/raw/survey.csv
    frozen:
      path: data/raw/frozen.csv
      locked: true
`

const surveyCSV = "id,name\n1,ada\n2,grace\n"

// frameJSON mirrors the loader's tabular output.
type frameJSON struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func newCatalogEnv(t *testing.T) *TestEnv {
	t.Helper()
	env := NewTestEnv(t)
	env.WriteConfig(catalogConfig)
	env.WriteDataFile(filepath.Join("data", "raw", "survey.csv"), surveyCSV)
	env.WriteDataFile(filepath.Join("data", "raw", "frozen.csv"), surveyCSV)
	return env
}

func TestInitializeProject(t *testing.T) {
	env := NewTestEnv(t)

	initResult := ParseJSON[map[string]string](t, env.MustRunLarder("init", "--json").Stdout)
	if initResult["store_id"] == "" {
		t.Error("store_id not reported")
	}

	if _, err := os.Stat(filepath.Join(env.ConfigDir, "larder.yaml")); err != nil {
		t.Error("larder.yaml not created")
	}
	if _, err := os.Stat(filepath.Join(env.ConfigDir, "larder.db")); err != nil {
		t.Error("metadata store not created")
	}
	for _, dir := range []string{filepath.Join("data", "raw"), filepath.Join("data", "private"), "output"} {
		if _, err := os.Stat(filepath.Join(env.Root, dir)); err != nil {
			t.Errorf("project dir %s not created", dir)
		}
	}

	// Re-running init keeps the same store identity.
	again := ParseJSON[map[string]string](t, env.MustRunLarder("init", "--json").Stdout)
	if again["store_id"] != initResult["store_id"] {
		t.Errorf("store_id changed across init runs: %q vs %q", again["store_id"], initResult["store_id"])
	}
}

func TestLoadRecordsIntegrity(t *testing.T) {
	env := newCatalogEnv(t)

	frame := ParseJSON[frameJSON](t, env.MustRunLarder("load", "inputs.survey").Stdout)
	if len(frame.Columns) != 2 || frame.Columns[0] != "id" {
		t.Errorf("unexpected columns: %v", frame.Columns)
	}
	if len(frame.Rows) != 2 {
		t.Errorf("row count = %d, want 2", len(frame.Rows))
	}

	records := ParseJSON[[]map[string]any](t, env.MustRunLarder("data", "records", "--json").Stdout)
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}
	if records[0]["name"] != "inputs.survey" {
		t.Errorf("record name = %v, want inputs.survey", records[0]["name"])
	}
}

func TestUnlockedDriftWarns(t *testing.T) {
	env := newCatalogEnv(t)

	env.MustRunLarder("load", "inputs.survey")
	env.WriteDataFile(filepath.Join("data", "raw", "survey.csv"), "id,name\n3,edsger\n")

	result := env.MustRunLarder("load", "inputs.survey")
	if !strings.Contains(result.Stderr, "changed since last read") {
		t.Errorf("expected drift warning on stderr, got: %s", result.Stderr)
	}

	frame := ParseJSON[frameJSON](t, result.Stdout)
	if len(frame.Rows) != 1 {
		t.Errorf("drifted load should serve new content, got %d rows", len(frame.Rows))
	}
}

func TestLockedEntryViolation(t *testing.T) {
	env := newCatalogEnv(t)

	env.MustRunLarder("load", "inputs.frozen")
	env.WriteDataFile(filepath.Join("data", "raw", "frozen.csv"), "id,name\n9,tampered\n")

	result := env.RunLarder("load", "inputs.frozen")
	if result.ExitCode == 0 {
		t.Fatal("loading a tampered locked entry should fail")
	}
	if !strings.Contains(result.Stderr, "locked data changed") {
		t.Errorf("expected violation message on stderr, got: %s", result.Stderr)
	}

	// Verify reports the violation and exits nonzero.
	verify := env.RunLarder("verify", "inputs.frozen", "--json")
	if verify.ExitCode == 0 {
		t.Error("verify should fail while a locked entry is in violation")
	}
	results := ParseJSON[[]map[string]any](t, verify.Stdout)
	if len(results) != 1 || results[0]["status"] != "violation" {
		t.Errorf("unexpected verify output: %v", results)
	}

	// Rebaseline is the remediation path.
	env.MustRunLarder("rebaseline", "inputs.frozen")

	verify = env.MustRunLarder("verify", "inputs.frozen", "--json")
	results = ParseJSON[[]map[string]any](t, verify.Stdout)
	if results[0]["status"] != "ok" {
		t.Errorf("status after rebaseline = %v, want ok", results[0]["status"])
	}
	env.MustRunLarder("load", "inputs.frozen")
}

func TestCachedLoadLifecycle(t *testing.T) {
	env := newCatalogEnv(t)

	first := env.MustRunLarder("load", "--cached", "inputs.survey")

	// The file changes underneath; the cached copy still serves.
	env.WriteDataFile(filepath.Join("data", "raw", "survey.csv"), "id,name\n3,edsger\n")
	cached := env.MustRunLarder("load", "--cached", "inputs.survey")
	if cached.Stdout != first.Stdout {
		t.Error("cached load should serve the stored copy")
	}

	records := ParseJSON[[]map[string]any](t, env.MustRunLarder("cache", "list", "--json").Stdout)
	if len(records) != 1 || records[0]["name"] != "data.inputs.survey" {
		t.Errorf("unexpected cache records: %v", records)
	}

	env.MustRunLarder("cache", "purge", "data.inputs.survey")
	fresh := ParseJSON[frameJSON](t, env.MustRunLarder("load", "--cached", "inputs.survey").Stdout)
	if len(fresh.Rows) != 1 {
		t.Errorf("post-purge load should reparse the file, got %d rows", len(fresh.Rows))
	}
}

func TestCachePurgeAll(t *testing.T) {
	env := newCatalogEnv(t)

	env.MustRunLarder("load", "--cached", "inputs.survey")
	env.MustRunLarder("load", "--cached", "inputs.frozen")

	env.MustRunLarder("cache", "purge", "--all")
	records := ParseJSON[[]map[string]any](t, env.MustRunLarder("cache", "list", "--json").Stdout)
	if len(records) != 0 {
		t.Errorf("cache records after purge --all = %d, want 0", len(records))
	}
}

func TestStatusCounts(t *testing.T) {
	env := newCatalogEnv(t)

	env.MustRunLarder("load", "inputs.survey")
	env.MustRunLarder("load", "--cached", "inputs.frozen")

	status := ParseJSON[map[string]any](t, env.MustRunLarder("status", "--json").Stdout)
	if status["catalog_entries"] != float64(2) {
		t.Errorf("catalog_entries = %v, want 2", status["catalog_entries"])
	}
	if status["data_records"] != float64(2) {
		t.Errorf("data_records = %v, want 2", status["data_records"])
	}
	if status["cache_records"] != float64(1) {
		t.Errorf("cache_records = %v, want 1", status["cache_records"])
	}
}

func TestDataShow(t *testing.T) {
	env := newCatalogEnv(t)

	entry := ParseJSON[map[string]any](t, env.MustRunLarder("data", "show", "inputs.frozen").Stdout)
	if entry["locked"] != true {
		t.Errorf("locked = %v, want true", entry["locked"])
	}
	if entry["format"] != "csv" {
		t.Errorf("format = %v, want csv", entry["format"])
	}

	missing := env.RunLarder("data", "show", "inputs.nope")
	if missing.ExitCode == 0 {
		t.Error("showing an unknown entry should fail")
	}
}
