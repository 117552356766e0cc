package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = ".rbxnav.kdl"

// Load reads the project configuration. A missing file is not an error: the
// defaults apply. The project root is resolved to an absolute path relative
// to the directory containing the config file.
func Load(projectRoot string) (*Config, error) {
	cfg := Default()

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		absRoot = projectRoot
	}
	cfg.Project.Root = absRoot

	kdlPath := filepath.Join(projectRoot, ConfigFileName)
	content, err := os.ReadFile(kdlPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	if err := parseKDL(cfg, string(content)); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(cfg.Project.Root) {
		cfg.Project.Root = filepath.Clean(filepath.Join(absRoot, cfg.Project.Root))
	}
	return cfg, cfg.Validate()
}

func parseKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "root":
					if s, ok := firstStringArg(cn); ok {
						cfg.Project.Root = s
					}
				case "sourcemap":
					if s, ok := firstStringArg(cn); ok {
						cfg.Project.Sourcemap = s
					}
				case "project_file":
					if s, ok := firstStringArg(cn); ok {
						cfg.Project.ProjectFile = s
					}
				}
			}
		case "scan":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "include":
					cfg.Scan.Include = append(cfg.Scan.Include, collectStringArgs(cn)...)
				case "exclude":
					// An exclude block replaces the defaults so projects can
					// opt back in to vendored trees.
					cfg.Scan.Exclude = collectStringArgs(cn)
				case "max_file_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Scan.MaxFileSize = int64(v)
					}
				case "max_file_count":
					if v, ok := firstIntArg(cn); ok {
						cfg.Scan.MaxFileCount = v
					}
				case "watch":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Scan.Watch = b
					}
				case "watch_debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Scan.WatchDebounceMs = v
					}
				}
			}
		case "query":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_suggestions":
					if v, ok := firstIntArg(cn); ok {
						cfg.Query.MaxSuggestions = v
					}
				case "min_score":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Query.MinScore = v
					}
				case "allow_very_fuzzy":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Query.AllowVeryFuzzy = b
					}
				}
			}
		case "require":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "path_style":
					if s, ok := firstStringArg(cn); ok {
						cfg.Require.PathStyle = s
					}
				case "max_parent_hops":
					if v, ok := firstIntArg(cn); ok {
						cfg.Require.MaxParentHops = v
					}
				case "use_explicit_accessor":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Require.UseExplicitAccessor = b
					}
				}
			}
		}
	}
	return nil
}

// Helpers over the kdl-go document model.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	for _, cn := range n.Children {
		if s := nodeName(cn); s != "" {
			out = append(out, s)
		}
	}
	return out
}
