package indexing

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"

	"rbxnav/internal/config"
	"rbxnav/internal/debug"
	rbxerrors "rbxnav/internal/errors"
	"rbxnav/internal/resolver"
	"rbxnav/internal/types"
	"rbxnav/pkg/pathutil"
)

// Scanner enumerates candidate module files under the project root.
type Scanner struct {
	cfg *config.Config
	res *resolver.Resolver
}

// NewScanner creates a scanner bound to a resolver.
func NewScanner(cfg *config.Config, res *resolver.Resolver) *Scanner {
	return &Scanner{cfg: cfg, res: res}
}

// Scan walks the project root and builds the candidate set. Include and
// exclude globs apply to root-relative slash paths. Files the resolver
// cannot place still get a candidate: Resolve is total.
func (s *Scanner) Scan(ctx context.Context) ([]types.Candidate, error) {
	root := s.cfg.Project.Root
	var candidates []types.Candidate

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			debug.LogIndex("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel := filepath.ToSlash(pathutil.ToRelative(path, root))
		if d.IsDir() {
			if rel != "." && s.excludedDir(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if !isLuauFile(d.Name()) || s.excluded(rel) || !s.included(rel) {
			return nil
		}
		if s.cfg.Scan.MaxFileCount > 0 && len(candidates) >= s.cfg.Scan.MaxFileCount {
			return fs.SkipAll
		}
		if info, err := d.Info(); err == nil && info.Size() > s.cfg.Scan.MaxFileSize {
			debug.LogIndex("skipping oversized file %s (%d bytes)", rel, info.Size())
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			debug.LogIndex("unreadable file %s: %v", rel, err)
			return nil
		}

		name := resolver.StripSuffixes(d.Name())
		if strings.EqualFold(name, "init") {
			// An init file stands for its directory; show that name.
			name = filepath.Base(filepath.Dir(path))
		}
		candidates = append(candidates, types.Candidate{
			Name:        name,
			Path:        path,
			LogicalPath: s.res.Resolve(path),
			RelPath:     rel,
			Origin:      classifyOrigin(rel),
			Hash:        xxhash.Sum64(content),
		})
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, rbxerrors.NewScanError("walk", root, err)
	}

	debug.LogIndex("scan of %s found %d candidates", root, len(candidates))
	return candidates, nil
}

func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.cfg.Scan.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// excludedDir prunes a directory when the exclude pattern would reject
// everything inside it. Patterns like **/_Index/** match children, not the
// directory itself, so probe with a synthetic child path.
func (s *Scanner) excludedDir(rel string) bool {
	return s.excluded(rel) || s.excluded(rel+"/x")
}

func (s *Scanner) included(rel string) bool {
	if len(s.cfg.Scan.Include) == 0 {
		return true
	}
	for _, pattern := range s.cfg.Scan.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func isLuauFile(name string) bool {
	return strings.HasSuffix(name, ".lua") || strings.HasSuffix(name, ".luau")
}

func classifyOrigin(rel string) types.Origin {
	segments := strings.Split(rel, "/")
	for _, seg := range segments[:len(segments)-1] {
		if strings.EqualFold(seg, "Packages") || strings.EqualFold(seg, "ServerPackages") {
			return types.OriginPackages
		}
	}
	switch strings.ToLower(segments[0]) {
	case "src", "lib", "server", "client", "shared":
		return types.OriginSource
	}
	return types.OriginOther
}
