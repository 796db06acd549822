package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docsa/moodle-migrate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "migration.log", cfg.LogFile)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.PruneShards)
	assert.True(t, cfg.Validate)
	assert.Equal(t, "files.xml", cfg.ManifestName)
	assert.Equal(t, "README.md", cfg.IndexName)
	assert.Equal(t, "lecture_3", cfg.LectureDir(3))
	assert.NotNil(t, cfg.Keywords)
	assert.Empty(t, cfg.Keywords)
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []string
	}{
		{name: "nil input", input: nil, expected: []string{}},
		{name: "empty string", input: "", expected: []string{}},
		{name: "comma separated", input: "matlab, octave ,", expected: []string{"matlab", "octave"}},
		{name: "list", input: []any{"matlab", "", nil, 42}, expected: []string{"matlab", "42"}},
		{name: "unsupported", input: 3.5, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeList(tt.input))
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		input      any
		defaultVal bool
		expected   bool
	}{
		{nil, true, true},
		{true, false, true},
		{0, true, false},
		{1, false, true},
		{"yes", false, true},
		{" OFF ", true, false},
		{"maybe", true, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, coerceBool(tt.input, tt.defaultVal), "input %v", tt.input)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig(map[string]any{
		"log_file":             " run.log ",
		"debug":                true,
		"prune_shards":         "yes",
		"validate":             false,
		"manifest_name":        "manifest.xml",
		"index_name":           "INDEX.md",
		"lecture_dir_template": "L{number}",
		"keywords": map[string]any{
			"tools":      []any{"matlab", "octave"},
			"assessment": "колоквіум",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "run.log", cfg.LogFile)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.PruneShards)
	assert.False(t, cfg.Validate)
	assert.Equal(t, "manifest.xml", cfg.ManifestName)
	assert.Equal(t, "INDEX.md", cfg.IndexName)
	assert.Equal(t, "L12", cfg.LectureDir(12))
	assert.Equal(t, []string{"matlab", "octave"}, cfg.Keywords[models.Tools])
	assert.Equal(t, []string{"колоквіум"}, cfg.Keywords[models.Assessment])
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{name: "unknown category", data: map[string]any{"keywords": map[string]any{"homework": "x"}}},
		{name: "keywords not a map", data: map[string]any{"keywords": []any{"x"}}},
		{name: "template without number", data: map[string]any{"lecture_dir_template": "lecture"}},
		{name: "template with separator", data: map[string]any{"lecture_dir_template": "a/{number}"}},
		{name: "index name with separator", data: map[string]any{"index_name": "docs/INDEX.md"}},
		{name: "index name escaping root", data: map[string]any{"index_name": "../../x"}},
		{name: "manifest name escaping root", data: map[string]any{"manifest_name": "../files.xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("prune_shards: true\nkeywords:\n  examples: [лістинг]\n"), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.True(t, cfg.PruneShards)
		assert.Equal(t, []string{"лістинг"}, cfg.Keywords[models.Examples])
	})

	t.Run("explicit file missing", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("debug: [unterminated"), 0o600))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("xdg default location", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "moodle-migrate"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(xdg, "moodle-migrate", "config.yml"), []byte("log_file: xdg.log\n"), 0o600))

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "xdg.log", cfg.LogFile)
	})

	t.Run("no config anywhere", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})
}
