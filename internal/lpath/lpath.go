// Package lpath handles the textual form of logical paths: game-rooted,
// dot-separated segment sequences where a segment that is not a valid Luau
// identifier is written as a quoted bracket accessor.
package lpath

import (
	"strings"
)

// IsIdent reports whether s can be written as a bare .name accessor.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Format renders segments as a logical path string. The first segment is the
// root token and is emitted verbatim; every following segment goes through the
// identifier-vs-bracket rule.
func Format(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(segments[0])
	appendSegments(&b, segments[1:])
	return b.String()
}

// Append attaches segments to an arbitrary base expression (an alias name, a
// script.Parent chain, a GetService call) using the same accessor formatting
// as Format.
func Append(expr string, segments []string) string {
	var b strings.Builder
	b.WriteString(expr)
	appendSegments(&b, segments)
	return b.String()
}

func appendSegments(b *strings.Builder, segments []string) {
	for _, seg := range segments {
		if IsIdent(seg) {
			b.WriteByte('.')
			b.WriteString(seg)
			continue
		}
		b.WriteString(`["`)
		for _, r := range seg {
			if r == '"' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteString(`"]`)
	}
}

// Split parses a logical path string back into segments. It accepts both bare
// accessors and quoted bracket accessors with \" and \\ escapes. Malformed
// trailing syntax ends the parse; Split never fails.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	var segments []string
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			i++
		case '[':
			// expect ["..."] with escapes
			j := i + 1
			if j >= len(path) || path[j] != '"' {
				return segments
			}
			j++
			var seg strings.Builder
			for j < len(path) && path[j] != '"' {
				if path[j] == '\\' && j+1 < len(path) {
					j++
				}
				seg.WriteByte(path[j])
				j++
			}
			if j >= len(path) {
				return segments
			}
			j++ // closing quote
			if j < len(path) && path[j] == ']' {
				j++
			}
			segments = append(segments, seg.String())
			i = j
		default:
			j := i
			for j < len(path) && path[j] != '.' && path[j] != '[' {
				j++
			}
			segments = append(segments, path[i:j])
			i = j
		}
	}
	return segments
}

// CommonPrefixLen returns how many leading segments a and b share.
func CommonPrefixLen(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
