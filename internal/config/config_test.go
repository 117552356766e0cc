package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbxnav/internal/requires"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "sourcemap.json", cfg.Project.Sourcemap)
	assert.Equal(t, "default.project.json", cfg.Project.ProjectFile)
	assert.Contains(t, cfg.Scan.Exclude, "**/_Index/**")
	assert.Equal(t, 10, cfg.Query.MaxSuggestions)
	assert.Equal(t, 0.5, cfg.Query.MinScore)
	assert.True(t, cfg.Query.AllowVeryFuzzy)
	assert.Equal(t, requires.StyleAuto, cfg.Require.PathStyle)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min score above one", func(c *Config) { c.Query.MinScore = 1.5 }},
		{"negative min score", func(c *Config) { c.Query.MinScore = -0.1 }},
		{"zero suggestions", func(c *Config) { c.Query.MaxSuggestions = 0 }},
		{"unknown path style", func(c *Config) { c.Require.PathStyle = "diagonal" }},
		{"negative hops", func(c *Config) { c.Require.MaxParentHops = -1 }},
		{"zero file size", func(c *Config) { c.Scan.MaxFileSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Project.Root))
	assert.Equal(t, "sourcemap.json", cfg.Project.Sourcemap)
}

func TestLoad_ParsesKDL(t *testing.T) {
	root := t.TempDir()
	content := `
project {
    sourcemap "custom.sourcemap.json"
    project_file "game.project.json"
}
scan {
    include "src/**" "lib/**"
    exclude "**/vendor/**"
    max_file_count 100
    watch true
    watch_debounce_ms 50
}
query {
    max_suggestions 5
    min_score 0.6
    allow_very_fuzzy false
}
require {
    path_style "absolute"
    max_parent_hops 5
    use_explicit_accessor true
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "custom.sourcemap.json", cfg.Project.Sourcemap)
	assert.Equal(t, "game.project.json", cfg.Project.ProjectFile)
	assert.Equal(t, []string{"src/**", "lib/**"}, cfg.Scan.Include)
	assert.Equal(t, []string{"**/vendor/**"}, cfg.Scan.Exclude, "explicit exclude replaces the defaults")
	assert.Equal(t, 100, cfg.Scan.MaxFileCount)
	assert.True(t, cfg.Scan.Watch)
	assert.Equal(t, 50, cfg.Scan.WatchDebounceMs)
	assert.Equal(t, 5, cfg.Query.MaxSuggestions)
	assert.InDelta(t, 0.6, cfg.Query.MinScore, 1e-9)
	assert.False(t, cfg.Query.AllowVeryFuzzy)
	assert.Equal(t, requires.StyleAbsolute, cfg.Require.PathStyle)
	assert.Equal(t, 5, cfg.Require.MaxParentHops)
	assert.True(t, cfg.Require.UseExplicitAccessor)
}

func TestLoad_RelativeRootResolvedAgainstConfigDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "game"), 0o755))
	content := `
project {
    root "game"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "game"), cfg.Project.Root)
}

func TestLoad_MalformedKDL(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`scan {`), 0o644))
	_, err := Load(root)
	assert.Error(t, err)
}

func TestLoad_InvalidValueFailsValidation(t *testing.T) {
	root := t.TempDir()
	content := `
query {
    min_score 2.0
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644))
	_, err := Load(root)
	assert.Error(t, err)
}

func TestFuzzyOptions(t *testing.T) {
	cfg := Default()
	cfg.Query.MinScore = 0.7
	cfg.Query.AllowVeryFuzzy = false
	opts := cfg.FuzzyOptions()
	assert.Equal(t, 0.7, opts.MinScore)
	assert.False(t, opts.AllowVeryFuzzy)
}
