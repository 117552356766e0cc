// Package aliases extracts name-to-logical-path bindings from Luau source.
//
// This is a whole-document heuristic, not scope analysis: every declaration
// in the document is treated as unconditionally visible, and a later
// re-declaration of the same name does not suppress the earlier binding.
package aliases

import (
	"regexp"
	"sort"
	"strings"

	"rbxnav/internal/types"
)

// Binding records one declared alias for a logical path. Depth is the number
// of segments in the path; deeper bindings are more specific.
type Binding struct {
	Name     string
	Segments []string
	Depth    int
	Line     int // zero-based line index of the declaration
}

// Path returns the binding's logical path segments.
func (b Binding) Path() []string {
	return b.Segments
}

var (
	accessorRe = regexp.MustCompile(`^\s*(?:local\s+)?([A-Za-z_]\w*)\s*=\s*game\s*:\s*GetService\(\s*["']([A-Za-z_]\w*)["']\s*\)((?:\.[A-Za-z_]\w*|\[\s*["'][^"\]]*["']\s*\])*)`)
	memberRe   = regexp.MustCompile(`^\s*(?:local\s+)?([A-Za-z_]\w*)\s*=\s*game\.([A-Z]\w*)\s*(?:--.*)?$`)
	chainRe    = regexp.MustCompile(`^\s*(?:local\s+)?([A-Za-z_]\w*)\s*=\s*([A-Za-z_]\w*)((?:\.[A-Za-z_]\w*|\[\s*["'][^"\]]*["']\s*\])+)\s*(?:--.*)?$`)
)

// Extract scans a document and returns its alias bindings sorted by depth
// descending (most specific first), ties in first-seen order. Unparsable
// text simply yields no bindings.
func Extract(source string) []Binding {
	lines := strings.Split(source, "\n")

	var out []Binding
	// latest maps an alias name to the segments a chain rooted at that name
	// extends. Accessor bindings claim a name outright; the member form only
	// binds names the accessor form left free.
	latest := make(map[string][]string)
	fromAccessor := make(map[string]bool)

	for i, line := range lines {
		m := accessorRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		segments := append([]string{types.RootToken, m[2]}, parseAccessors(m[3])...)
		out = append(out, Binding{Name: m[1], Segments: segments, Depth: len(segments), Line: i})
		latest[m[1]] = segments
		fromAccessor[m[1]] = true
	}

	for i, line := range lines {
		m := memberRe.FindStringSubmatch(line)
		if m == nil || fromAccessor[m[1]] {
			continue
		}
		segments := []string{types.RootToken, m[2]}
		out = append(out, Binding{Name: m[1], Segments: segments, Depth: len(segments), Line: i})
		latest[m[1]] = segments
	}

	for i, line := range lines {
		m := chainRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		base, bound := latest[m[2]]
		if !bound {
			continue
		}
		suffix := parseAccessors(m[3])
		if len(suffix) == 0 {
			continue
		}
		segments := make([]string, 0, len(base)+len(suffix))
		segments = append(segments, base...)
		segments = append(segments, suffix...)
		out = append(out, Binding{Name: m[1], Segments: segments, Depth: len(segments), Line: i})
		latest[m[1]] = segments
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Depth > out[b].Depth
	})
	return out
}

// parseAccessors splits a chain suffix like `.Shared["My Lib"].Utils` into
// its segments. Both quote styles are accepted; escapes inside brackets are
// taken verbatim.
func parseAccessors(s string) []string {
	var segments []string
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			j := i + 1
			for j < len(s) && (isWordByte(s[j])) {
				j++
			}
			if j == i+1 {
				return segments
			}
			segments = append(segments, s[i+1:j])
			i = j
		case '[':
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j >= len(s) || (s[j] != '"' && s[j] != '\'') {
				return segments
			}
			quote := s[j]
			j++
			var seg strings.Builder
			for j < len(s) && s[j] != quote {
				if s[j] == '\\' && j+1 < len(s) {
					j++
				}
				seg.WriteByte(s[j])
				j++
			}
			if j >= len(s) {
				return segments
			}
			j++ // closing quote
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j < len(s) && s[j] == ']' {
				j++
			}
			segments = append(segments, seg.String())
			i = j
		default:
			return segments
		}
	}
	return segments
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
