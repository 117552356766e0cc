package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"rbxnav/internal/config"
	"rbxnav/internal/debug"
	"rbxnav/internal/indexing"
	"rbxnav/internal/version"
)

// loadConfigWithOverrides loads the project configuration and applies CLI
// flag overrides on top.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Scan.Include = include
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Scan.Exclude = append(cfg.Scan.Exclude, exclude...)
	}
	if c.IsSet("min-score") {
		cfg.Query.MinScore = c.Float64("min-score")
	}
	if c.IsSet("max-suggestions") {
		cfg.Query.MaxSuggestions = c.Int("max-suggestions")
	}
	if c.IsSet("path-style") {
		cfg.Require.PathStyle = c.String("path-style")
	}
	return cfg, cfg.Validate()
}

func buildIndex(c *cli.Context) (*indexing.Index, error) {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return nil, err
	}
	ix := indexing.New(cfg)
	if err := ix.Rebuild(c.Context); err != nil {
		return nil, err
	}
	return ix, nil
}

func main() {
	if debug.Enabled() {
		debug.SetOutput(os.Stderr)
	}

	app := &cli.App{
		Name:                   "rbxnav",
		Usage:                  "Resolve and rank Roblox module paths from informal references",
		Version:                version.Info(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (default: current directory)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Only scan files matching glob patterns (e.g. --include 'src/**')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Additionally exclude files matching glob patterns",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit JSON instead of text",
			},
			&cli.Float64Flag{
				Name:  "min-score",
				Usage: "Minimum fuzzy match score (0-1)",
			},
			&cli.IntFlag{
				Name:  "max-suggestions",
				Usage: "Maximum number of suggestions per query",
			},
			&cli.StringFlag{
				Name:  "path-style",
				Usage: "Require path style: auto, absolute or relative",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "index",
				Usage:     "Scan the project and list every candidate module",
				ArgsUsage: " ",
				Action:    runIndex,
			},
			{
				Name:      "find",
				Usage:     "Rank modules against a (possibly misspelled) query",
				ArgsUsage: "<query>",
				Action:    runFind,
			},
			{
				Name:      "resolve",
				Usage:     "Print the logical path for a physical file",
				ArgsUsage: "<file>",
				Action:    runResolve,
			},
			{
				Name:      "require",
				Usage:     "Print the require path expression for the best query match",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Usage: "Active document; its aliases and location shape the expression",
					},
				},
				Action: runRequire,
			},
			{
				Name:      "watch",
				Usage:     "Keep the index fresh while files change",
				ArgsUsage: " ",
				Action:    runWatch,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rbxnav: %v\n", err)
		os.Exit(1)
	}
}

func runIndex(c *cli.Context) error {
	ix, err := buildIndex(c)
	if err != nil {
		return err
	}
	candidates := ix.Candidates()
	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(candidates)
	}
	for _, cand := range candidates {
		fmt.Printf("%-30s %-12s %s\n", cand.Name, cand.Origin, cand.LogicalPath)
	}
	fmt.Printf("%d modules indexed\n", len(candidates))
	return nil
}

func runFind(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return cli.Exit("usage: rbxnav find <query>", 2)
	}
	ix, err := buildIndex(c)
	if err != nil {
		return err
	}
	suggestions := ix.Suggest(query, "", "")
	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(suggestions)
	}
	if len(suggestions) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, s := range suggestions {
		fmt.Printf("%5.2f  %-12s %-30s %s\n", s.Score, s.Tier, s.Candidate.Name, s.Expression)
	}
	return nil
}

func runResolve(c *cli.Context) error {
	file := c.Args().First()
	if file == "" {
		return cli.Exit("usage: rbxnav resolve <file>", 2)
	}
	ix, err := buildIndex(c)
	if err != nil {
		return err
	}
	logical := ix.Resolver().Resolve(file)
	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"path": file, "logicalPath": logical})
	}
	fmt.Println(logical)
	return nil
}

func runRequire(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return cli.Exit("usage: rbxnav require <query> [--from file]", 2)
	}
	ix, err := buildIndex(c)
	if err != nil {
		return err
	}

	activeDoc, activePath := "", ""
	if from := c.String("from"); from != "" {
		content, err := os.ReadFile(from)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", from, err)
		}
		activeDoc, activePath = string(content), from
	}

	suggestions := ix.Suggest(query, activeDoc, activePath)
	if len(suggestions) == 0 {
		return cli.Exit("no matches", 1)
	}
	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(suggestions[0])
	}
	fmt.Printf("require(%s)\n", suggestions[0].Expression)
	return nil
}

func runWatch(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	ix := indexing.New(cfg)
	if err := ix.Rebuild(c.Context); err != nil {
		return err
	}
	fmt.Printf("%d modules indexed, watching %s\n", len(ix.Candidates()), cfg.Project.Root)

	watcher, err := indexing.NewWatcher(cfg, func() {
		if err := ix.Rebuild(c.Context); err != nil {
			fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
			return
		}
		fmt.Printf("reindexed: %d modules\n", len(ix.Candidates()))
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		_ = watcher.Close()
		return err
	}
	defer watcher.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}
