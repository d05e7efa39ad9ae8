package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{name: "comma alias", input: "comma", want: ','},
		{name: "tab alias", input: "tab", want: '\t'},
		{name: "semicolon alias", input: "semicolon", want: ';'},
		{name: "space alias", input: "space", want: ' '},
		{name: "literal character", input: "|", want: '|'},
		{name: "empty means format default", input: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDelimiter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects multi-character input", func(t *testing.T) {
		_, err := ResolveDelimiter("||")
		assert.ErrorIs(t, err, ErrInvalidDelimiter)
	})
}

func TestCatalogEntryRecordName(t *testing.T) {
	t.Run("prefers the logical path", func(t *testing.T) {
		e := CatalogEntry{LogicalPath: "inputs.raw.survey", FilePath: "/p/data/survey.csv"}
		assert.Equal(t, "inputs.raw.survey", e.RecordName())
	})

	t.Run("falls back to the file path for ad-hoc entries", func(t *testing.T) {
		e := CatalogEntry{FilePath: "/p/data/survey.csv"}
		assert.Equal(t, "/p/data/survey.csv", e.RecordName())
	})
}

func TestConfigValidate(t *testing.T) {
	valid := Config{ProjectRoot: "/p", StorePath: "/p/.larder/larder.db", CacheDir: "/p/.larder/cache"}

	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "missing project root", mutate: func(c *Config) { c.ProjectRoot = "" }, want: ErrProjectRootEmpty},
		{name: "missing store path", mutate: func(c *Config) { c.StorePath = "" }, want: ErrStorePathEmpty},
		{name: "missing cache dir", mutate: func(c *Config) { c.CacheDir = "" }, want: ErrCacheDirEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestConfigKey(t *testing.T) {
	assert.Equal(t, DefaultKeyEnv, Config{}.Key())
	assert.Equal(t, "MY_KEY", Config{KeyEnv: "MY_KEY"}.Key())
}
