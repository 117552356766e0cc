// Package indexing is the external-collaborator layer around the resolver
// and ranking cores: it reads the structural tree files, enumerates
// candidate modules on disk and serves ranked queries over them.
package indexing

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"rbxnav/internal/aliases"
	"rbxnav/internal/config"
	"rbxnav/internal/debug"
	"rbxnav/internal/ranking"
	"rbxnav/internal/requires"
	"rbxnav/internal/resolver"
	"rbxnav/internal/tree"
	"rbxnav/internal/types"
)

// Index owns the candidate set and the resolver snapshots.
type Index struct {
	cfg     *config.Config
	res     *resolver.Resolver
	scanner *Scanner

	mu         sync.RWMutex
	candidates []types.Candidate

	// Concurrent rebuild requests coalesce into one scan.
	rebuildGroup singleflight.Group
}

// Suggestion is one ranked query result with its ready-to-insert require
// path expression.
type Suggestion struct {
	Candidate  types.Candidate
	Score      float64
	Tier       types.Tier
	Expression string
}

// New creates an index for the configured project.
func New(cfg *config.Config) *Index {
	res := resolver.New(cfg.Project.Root)
	return &Index{
		cfg:     cfg,
		res:     res,
		scanner: NewScanner(cfg, res),
	}
}

// Resolver exposes the path resolver for callers that resolve single files.
func (ix *Index) Resolver() *resolver.Resolver {
	return ix.res
}

// Rebuild reloads the tree snapshots and rescans the candidate set. Multiple
// concurrent calls share a single rebuild; the operation is otherwise
// re-entrant safe.
func (ix *Index) Rebuild(ctx context.Context) error {
	_, err, _ := ix.rebuildGroup.Do("rebuild", func() (interface{}, error) {
		ix.reloadTrees()
		candidates, err := ix.scanner.Scan(ctx)
		if err != nil {
			return nil, err
		}
		ix.mu.Lock()
		ix.candidates = candidates
		ix.mu.Unlock()
		return nil, nil
	})
	return err
}

// reloadTrees swaps in fresh sourcemap and project snapshots. A missing or
// malformed tree file simply leaves that tier absent; the resolver degrades
// to its next tier.
func (ix *Index) reloadTrees() {
	root := ix.cfg.Project.Root

	var mapping *tree.MappingNode
	if data, err := os.ReadFile(filepath.Join(root, ix.cfg.Project.Sourcemap)); err == nil {
		if m, err := tree.DecodeMapping(data); err == nil {
			mapping = m
		} else {
			debug.LogIndex("ignoring %s: %v", ix.cfg.Project.Sourcemap, err)
		}
	}
	ix.res.SetMapping(mapping)

	var project *tree.ProjectFile
	if data, err := os.ReadFile(filepath.Join(root, ix.cfg.Project.ProjectFile)); err == nil {
		if p, err := tree.DecodeProject(data); err == nil {
			project = p
		} else {
			debug.LogIndex("ignoring %s: %v", ix.cfg.Project.ProjectFile, err)
		}
	}
	ix.res.SetProject(project)
}

// Candidates returns the current candidate set.
func (ix *Index) Candidates() []types.Candidate {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.candidates
}

// Query ranks the candidate set against a query string over display name
// and relative path.
func (ix *Index) Query(query string) []ranking.Ranked[types.Candidate] {
	ix.mu.RLock()
	candidates := ix.candidates
	ix.mu.RUnlock()

	ranked := ranking.Rank(query, candidates, func(c types.Candidate) []string {
		return []string{c.Name, c.RelPath}
	}, ix.cfg.FuzzyOptions())

	if max := ix.cfg.Query.MaxSuggestions; max > 0 && len(ranked) > max {
		ranked = ranked[:max]
	}
	debug.LogQuery("%q matched %d candidates", query, len(ranked))
	return ranked
}

// Suggest ranks candidates and builds a require path expression for each,
// using the aliases declared in the active document. activeDoc may be empty;
// activePath, when set, enables script-relative expressions.
func (ix *Index) Suggest(query, activeDoc, activePath string) []Suggestion {
	bindings := aliases.Extract(activeDoc)
	current := ""
	if activePath != "" {
		current = ix.res.Resolve(activePath)
	}
	opts := ix.cfg.RequireOptions()

	ranked := ix.Query(query)
	suggestions := make([]Suggestion, 0, len(ranked))
	for _, r := range ranked {
		suggestions = append(suggestions, Suggestion{
			Candidate:  r.Item,
			Score:      r.Score,
			Tier:       r.Tier,
			Expression: requires.Build(r.Item.LogicalPath, bindings, current, opts),
		})
	}
	return suggestions
}
