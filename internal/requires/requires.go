// Package requires builds the shortest require() path expression for a
// target logical path, reusing aliases already declared in the document.
package requires

import (
	"strings"

	"rbxnav/internal/aliases"
	"rbxnav/internal/lpath"
	"rbxnav/internal/types"
)

// Path styles controlling whether script-relative expressions are allowed.
const (
	StyleAuto     = "auto"
	StyleAbsolute = "absolute"
	StyleRelative = "relative"
)

// SelfToken and ParentAccessor form script-relative expressions.
const (
	SelfToken      = "script"
	ParentAccessor = "Parent"
)

// knownServices are the top-level containers eligible for the bare service
// alias and GetService strategies.
var knownServices = map[string]bool{
	"ReplicatedStorage":   true,
	"ReplicatedFirst":     true,
	"ServerScriptService": true,
	"ServerStorage":       true,
	"StarterGui":          true,
	"StarterPack":         true,
	"StarterPlayer":       true,
	"Workspace":           true,
	"Lighting":            true,
	"SoundService":        true,
}

// Options configures expression building.
type Options struct {
	PathStyle           string
	MaxParentHops       int
	UseExplicitAccessor bool
}

// DefaultOptions returns the builder defaults.
func DefaultOptions() Options {
	return Options{PathStyle: StyleAuto, MaxParentHops: 3}
}

// Build produces a reference expression for target. Strategies apply in
// fixed priority order, first applicable wins:
//
//  1. deepest declared alias whose path prefixes the target
//  2. script-relative expression (unless the style is absolute)
//  3. bare alias for the target's top-level service
//  4. explicit GetService wrap (opt-in)
//  5. the target path unchanged
//
// bindings must already be sorted deepest-first, as aliases.Extract returns
// them; current may be empty when the active document has no known path.
func Build(target string, bindings []aliases.Binding, current string, opts Options) string {
	if opts.MaxParentHops <= 0 {
		opts.MaxParentHops = DefaultOptions().MaxParentHops
	}
	targetSegs := lpath.Split(target)
	if len(targetSegs) == 0 {
		return target
	}

	if expr, ok := fromAlias(targetSegs, bindings); ok {
		return expr
	}
	if opts.PathStyle != StyleAbsolute && current != "" {
		if expr, ok := fromRelative(targetSegs, lpath.Split(current), opts.MaxParentHops); ok {
			return expr
		}
	}
	if expr, ok := fromServiceAlias(targetSegs, bindings); ok {
		return expr
	}
	if opts.UseExplicitAccessor && len(targetSegs) >= 2 && targetSegs[0] == types.RootToken {
		call := `game:GetService("` + targetSegs[1] + `")`
		return lpath.Append(call, targetSegs[2:])
	}
	return target
}

// fromAlias picks the first binding whose path is a segment prefix of the
// target. The depth-descending input order makes that the most specific one.
func fromAlias(target []string, bindings []aliases.Binding) (string, bool) {
	for _, b := range bindings {
		if b.Depth == 0 || b.Depth > len(target) {
			continue
		}
		if lpath.CommonPrefixLen(b.Segments, target) == b.Depth {
			return lpath.Append(b.Name, target[b.Depth:]), true
		}
	}
	return "", false
}

// fromRelative emits script.Parent chains. The shared prefix must cover the
// root and at least one container; each hop climbs one level from the
// current file up to the deepest common ancestor.
func fromRelative(target, current []string, maxHops int) (string, bool) {
	shared := lpath.CommonPrefixLen(target, current)
	if shared < 2 {
		return "", false
	}
	hops := len(current) - shared
	if hops > maxHops {
		return "", false
	}
	expr := SelfToken + strings.Repeat("."+ParentAccessor, hops)
	return lpath.Append(expr, target[shared:]), true
}

// fromServiceAlias finds a depth-2 binding for exactly the target's
// top-level service.
func fromServiceAlias(target []string, bindings []aliases.Binding) (string, bool) {
	if len(target) < 2 || !knownServices[target[1]] {
		return "", false
	}
	for _, b := range bindings {
		if b.Depth == 2 && b.Segments[0] == target[0] && b.Segments[1] == target[1] {
			return lpath.Append(b.Name, target[2:]), true
		}
	}
	return "", false
}
