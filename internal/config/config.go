package config

import (
	"fmt"

	"rbxnav/internal/fuzzy"
	"rbxnav/internal/requires"
	"rbxnav/internal/types"
)

// Config is the full rbxnav configuration. Defaults are tuned for
// interactive use: aggressive matching, short suggestion lists.
type Config struct {
	Project Project
	Scan    Scan
	Query   Query
	Require Require
}

type Project struct {
	Root        string // absolute project root
	Sourcemap   string // sourcemap file name, relative to root
	ProjectFile string // project-definition file name, relative to root
}

type Scan struct {
	Include         []string // doublestar globs; empty means every Luau file
	Exclude         []string
	MaxFileSize     int64
	MaxFileCount    int
	Watch           bool
	WatchDebounceMs int
}

type Query struct {
	MaxSuggestions int
	MinScore       float64
	AllowVeryFuzzy bool
}

type Require struct {
	PathStyle           string // auto, absolute or relative
	MaxParentHops       int
	UseExplicitAccessor bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Project: Project{
			Sourcemap:   "sourcemap.json",
			ProjectFile: "default.project.json",
		},
		Scan: Scan{
			Exclude:         []string{"**/_Index/**", "**/.git/**"},
			MaxFileSize:     types.DefaultMaxFileSize,
			MaxFileCount:    types.DefaultMaxFileCount,
			WatchDebounceMs: 200,
		},
		Query: Query{
			MaxSuggestions: 10,
			MinScore:       fuzzy.DefaultMinScore,
			AllowVeryFuzzy: true,
		},
		Require: Require{
			PathStyle:     requires.StyleAuto,
			MaxParentHops: 3,
		},
	}
}

// Validate checks value ranges. Called after file load and flag overrides.
func (c *Config) Validate() error {
	if c.Query.MinScore < 0 || c.Query.MinScore > 1 {
		return fmt.Errorf("query min_score must be between 0 and 1, got %v", c.Query.MinScore)
	}
	if c.Query.MaxSuggestions <= 0 {
		return fmt.Errorf("query max_suggestions must be positive, got %d", c.Query.MaxSuggestions)
	}
	switch c.Require.PathStyle {
	case requires.StyleAuto, requires.StyleAbsolute, requires.StyleRelative:
	default:
		return fmt.Errorf("require path_style must be auto, absolute or relative, got %q", c.Require.PathStyle)
	}
	if c.Require.MaxParentHops < 0 {
		return fmt.Errorf("require max_parent_hops must not be negative, got %d", c.Require.MaxParentHops)
	}
	if c.Scan.MaxFileSize <= 0 {
		return fmt.Errorf("scan max_file_size must be positive, got %d", c.Scan.MaxFileSize)
	}
	return nil
}

// FuzzyOptions derives the scorer options for this configuration.
func (c *Config) FuzzyOptions() fuzzy.Options {
	opts := fuzzy.DefaultOptions()
	opts.MinScore = c.Query.MinScore
	opts.AllowVeryFuzzy = c.Query.AllowVeryFuzzy
	return opts
}

// RequireOptions derives the builder options for this configuration.
func (c *Config) RequireOptions() requires.Options {
	return requires.Options{
		PathStyle:           c.Require.PathStyle,
		MaxParentHops:       c.Require.MaxParentHops,
		UseExplicitAccessor: c.Require.UseExplicitAccessor,
	}
}
