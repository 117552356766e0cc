// Package resolver maps physical file paths to game-rooted logical paths.
//
// Resolution runs through a fixed priority chain: the generated sourcemap,
// then the authored project definition, then a naming-convention fallback.
// Resolve is total; malformed structural input degrades to the next tier and
// the worst case is a path built from the bare file name.
package resolver

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"rbxnav/internal/debug"
	"rbxnav/internal/lpath"
	"rbxnav/internal/tree"
	"rbxnav/internal/types"
)

// defaultCacheSize bounds the memo cache. Eviction only costs a recompute;
// it can never change a result.
const defaultCacheSize = 8192

// sourceExts are the extensions recognized on module files.
var sourceExts = []string{".luau", ".lua"}

// roleSuffixes mark run-context variants of a file name and never contribute
// a logical path segment.
var roleSuffixes = []string{".server", ".client", ".meta"}

// conventionRoots maps the first path segment to a well-known container when
// neither tree knows the file. A value containing "/" expands to multiple
// segments.
var conventionRoots = map[string]string{
	"src":    "ReplicatedStorage",
	"lib":    "ReplicatedStorage",
	"shared": "ReplicatedStorage/Shared",
	"server": "ServerScriptService",
	"client": "StarterPlayer/StarterPlayerScripts",
}

// Resolver resolves physical paths against the current tree snapshots.
// Reads are safe from multiple goroutines; snapshot swaps are serialized by
// the caller (reload events) and purge the memo cache.
type Resolver struct {
	mu      sync.RWMutex
	root    string
	mapping *tree.MappingNode
	project *tree.ProjectFile
	cache   *lru.Cache[string, string]
}

// New creates a resolver for the given project root.
func New(root string) *Resolver {
	cache, _ := lru.New[string, string](defaultCacheSize)
	return &Resolver{root: root, cache: cache}
}

// Root returns the project root the resolver compares paths against.
func (r *Resolver) Root() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root
}

// SetMapping swaps in a new sourcemap snapshot and invalidates the cache.
// Pass nil when the sourcemap is absent or failed to load.
func (r *Resolver) SetMapping(m *tree.MappingNode) {
	r.mu.Lock()
	r.mapping = m
	r.mu.Unlock()
	r.cache.Purge()
}

// SetProject swaps in a new project-definition snapshot and invalidates the
// cache. Pass nil when the project file is absent or failed to load.
func (r *Resolver) SetProject(p *tree.ProjectFile) {
	r.mu.Lock()
	r.project = p
	r.mu.Unlock()
	r.cache.Purge()
}

// Invalidate drops every memoized result.
func (r *Resolver) Invalidate() {
	r.cache.Purge()
}

// Resolve maps a physical path to its logical path. It never fails: internal
// errors fall through to the next tier, and the final fallback is the bare
// file name under the root token.
func (r *Resolver) Resolve(physicalPath string) string {
	if cached, ok := r.cache.Get(physicalPath); ok {
		return cached
	}

	r.mu.RLock()
	root, mapping, project := r.root, r.mapping, r.project
	r.mu.RUnlock()

	result := resolve(physicalPath, root, mapping, project)
	r.cache.Add(physicalPath, result)
	return result
}

func resolve(physicalPath, root string, mapping *tree.MappingNode, project *tree.ProjectFile) string {
	rel := relativeTo(physicalPath, root)

	if mapping != nil {
		if out, ok := searchMapping(mapping, rel); ok {
			debug.LogResolve("%s -> %s (sourcemap)", physicalPath, out)
			return out
		}
	}
	if project != nil && project.Tree != nil {
		if out, ok := searchProject(project.Tree, rel); ok {
			debug.LogResolve("%s -> %s (project)", physicalPath, out)
			return out
		}
	}
	if out, ok := conventionFallback(rel); ok {
		debug.LogResolve("%s -> %s (convention)", physicalPath, out)
		return out
	}
	return lpath.Format([]string{types.RootToken, StripSuffixes(baseName(rel))})
}

// searchMapping walks the sourcemap depth-first looking for a node whose
// filePaths contain the target. The returned logical path is the node-name
// chain below the root, which itself stands for the root token.
func searchMapping(root *tree.MappingNode, rel string) (out string, ok bool) {
	// Sourcemaps are machine-generated but still external input.
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()

	target := StripSuffixes(normalize(rel))

	type frame struct {
		node *tree.MappingNode
		path []string
	}
	stack := []frame{{root, nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(f.path) > tree.MaxDepth {
			continue
		}
		for _, fp := range f.node.FilePaths {
			if StripSuffixes(normalize(fp)) == target {
				return lpath.Format(append([]string{types.RootToken}, f.path...)), true
			}
		}
		// Push in reverse so the first child is visited first.
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			child := f.node.Children[i]
			if child == nil {
				continue
			}
			childPath := make([]string, len(f.path), len(f.path)+1)
			copy(childPath, f.path)
			stack = append(stack, frame{child, append(childPath, child.Name)})
		}
	}
	return "", false
}

// searchProject walks the project tree depth-first. A node matches when its
// $path equals the target or is a directory ancestor of it (the shared prefix
// must end on a separator boundary). The remainder below the binding becomes
// extra segments after init collapsing.
func searchProject(root *tree.ProjectNode, rel string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()

	target := normalize(rel)

	type frame struct {
		node *tree.ProjectNode
		path []string
	}
	stack := []frame{{root, nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(f.path) > tree.MaxDepth {
			continue
		}
		if f.node.Path != "" {
			binding := normalize(f.node.Path)
			var remainder string
			matched := false
			switch {
			case StripSuffixes(binding) == StripSuffixes(target):
				matched = true
			case strings.HasPrefix(target, binding+"/"):
				matched = true
				remainder = target[len(binding)+1:]
			}
			if matched {
				segments := append([]string{types.RootToken}, f.path...)
				segments = append(segments, collapseSegments(strings.Split(remainder, "/"))...)
				return lpath.Format(segments), true
			}
		}
		// Map iteration order is random; sort for deterministic resolution.
		names := make([]string, 0, len(f.node.Children))
		for name := range f.node.Children {
			names = append(names, name)
		}
		sort.Strings(names)
		for i := len(names) - 1; i >= 0; i-- {
			child := f.node.Children[names[i]]
			if child == nil {
				continue
			}
			childPath := make([]string, len(f.path), len(f.path)+1)
			copy(childPath, f.path)
			stack = append(stack, frame{child, append(childPath, names[i])})
		}
	}
	return "", false
}

// conventionFallback maps a root-relative path through the static naming
// table. The first segment picks the container; a mapped value containing a
// separator splices in as multiple segments.
func conventionFallback(rel string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()

	parts := strings.Split(normalize(rel), "/")
	if len(parts) == 0 {
		return "", false
	}

	segments := []string{types.RootToken}
	if mapped, found := conventionRoots[strings.ToLower(parts[0])]; found {
		segments = append(segments, strings.Split(mapped, "/")...)
		parts = parts[1:]
	}
	rest := collapseSegments(parts)
	if len(segments) == 1 && len(rest) == 0 {
		// Everything collapsed away: a bare init file at the root.
		rest = []string{StripSuffixes(baseName(rel))}
	}
	segments = append(segments, rest...)
	return lpath.Format(segments), true
}

// collapseSegments strips source suffixes from each segment and drops any
// segment that then reads "init": such a file stands for its directory, not
// an extra path level.
func collapseSegments(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		base := StripSuffixes(p)
		if strings.EqualFold(base, "init") {
			continue
		}
		out = append(out, base)
	}
	return out
}

// StripSuffixes removes a recognized source extension and then a recognized
// role suffix, so Button.server.luau and Button both compare equal.
func StripSuffixes(name string) string {
	for _, ext := range sourceExts {
		if strings.HasSuffix(name, ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	for _, suffix := range roleSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	return name
}

// normalize canonicalizes separators and strips leading ./ so paths from
// different producers compare equal. Backslashes are converted regardless of
// host OS: sourcemaps generated on Windows carry them.
func normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "./")
	return strings.TrimSuffix(p, "/")
}

// relativeTo rebases an absolute path onto the project root. Relative input
// is assumed to already be root-relative.
func relativeTo(p, root string) string {
	if root == "" || !filepath.IsAbs(p) {
		return normalize(p)
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return normalize(p)
	}
	return normalize(rel)
}

func baseName(p string) string {
	p = normalize(p)
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
