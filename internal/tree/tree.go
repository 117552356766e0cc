// Package tree models the two external structural inputs the resolver
// consumes: the generated sourcemap and the authored project definition.
// Both are read-only snapshots; a reload replaces the whole tree.
package tree

import (
	"encoding/json"
	"fmt"
	"strings"

	rbxerrors "rbxnav/internal/errors"
)

// MaxDepth bounds tree traversal. Both trees are untrusted external input;
// anything nested deeper is treated as malformed and ignored.
const MaxDepth = 64

// MappingNode is one node of the sourcemap tree.
type MappingNode struct {
	Name      string         `json:"name"`
	ClassName string         `json:"className,omitempty"`
	FilePaths []string       `json:"filePaths,omitempty"`
	Children  []*MappingNode `json:"children,omitempty"`
}

// DecodeMapping parses a sourcemap document.
func DecodeMapping(data []byte) (*MappingNode, error) {
	var root MappingNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, rbxerrors.NewStructuralError("sourcemap", "decode", err)
	}
	if root.Name == "" {
		return nil, rbxerrors.NewStructuralError("sourcemap", "decode", fmt.Errorf("root node has no name"))
	}
	return &root, nil
}

// ProjectNode is one node of the project-definition tree. A node either binds
// a physical path (leaf-like) or only contains further named children; Rojo
// allows both at once, so Path may be set on a container too.
type ProjectNode struct {
	ClassName string
	Path      string
	Children  map[string]*ProjectNode
}

// IsContainer reports whether the node has named children.
func (n *ProjectNode) IsContainer() bool {
	return len(n.Children) > 0
}

// ProjectFile is the decoded project definition.
type ProjectFile struct {
	Name string
	Tree *ProjectNode
}

// DecodeProject parses a project-definition document.
func DecodeProject(data []byte) (*ProjectFile, error) {
	var raw struct {
		Name string          `json:"name"`
		Tree json.RawMessage `json:"tree"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, rbxerrors.NewStructuralError("project", "decode", err)
	}
	if len(raw.Tree) == 0 {
		return nil, rbxerrors.NewStructuralError("project", "decode", fmt.Errorf("missing tree"))
	}
	root, err := decodeProjectNode(raw.Tree, 0)
	if err != nil {
		return nil, rbxerrors.NewStructuralError("project", "decode", err)
	}
	return &ProjectFile{Name: raw.Name, Tree: root}, nil
}

// decodeProjectNode separates the $-prefixed metadata keys from named child
// nodes. Unknown $-keys ($properties, $ignoreUnknownInstances, ...) are
// skipped rather than rejected so newer project files still load.
func decodeProjectNode(data []byte, depth int) (*ProjectNode, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("tree nested deeper than %d levels", MaxDepth)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	node := &ProjectNode{}
	for key, value := range fields {
		if strings.HasPrefix(key, "$") {
			switch key {
			case "$className":
				if err := json.Unmarshal(value, &node.ClassName); err != nil {
					return nil, fmt.Errorf("$className: %w", err)
				}
			case "$path":
				// $path is either a string or {optional: string}
				if err := json.Unmarshal(value, &node.Path); err != nil {
					var opt struct {
						Optional string `json:"optional"`
					}
					if err2 := json.Unmarshal(value, &opt); err2 != nil {
						return nil, fmt.Errorf("$path: %w", err)
					}
					node.Path = opt.Optional
				}
			}
			continue
		}
		child, err := decodeProjectNode(value, depth+1)
		if err != nil {
			return nil, fmt.Errorf("child %q: %w", key, err)
		}
		if node.Children == nil {
			node.Children = make(map[string]*ProjectNode)
		}
		node.Children[key] = child
	}
	return node, nil
}
