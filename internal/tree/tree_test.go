package tree

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rbxerrors "rbxnav/internal/errors"
)

func TestDecodeMapping(t *testing.T) {
	data := []byte(`{
		"name": "MyGame",
		"className": "DataModel",
		"children": [
			{
				"name": "ReplicatedStorage",
				"className": "ReplicatedStorage",
				"children": [
					{"name": "Janitor", "filePaths": ["src/Packages/Janitor.luau"]}
				]
			}
		]
	}`)

	root, err := DecodeMapping(data)
	require.NoError(t, err)
	assert.Equal(t, "MyGame", root.Name)
	require.Len(t, root.Children, 1)
	rs := root.Children[0]
	assert.Equal(t, "ReplicatedStorage", rs.Name)
	require.Len(t, rs.Children, 1)
	assert.Equal(t, []string{"src/Packages/Janitor.luau"}, rs.Children[0].FilePaths)
}

func TestDecodeMapping_Malformed(t *testing.T) {
	_, err := DecodeMapping([]byte(`{"name": `))
	require.Error(t, err)

	var structural *rbxerrors.StructuralError
	assert.True(t, stderrors.As(err, &structural))
	assert.Equal(t, "sourcemap", structural.Source)
}

func TestDecodeMapping_MissingName(t *testing.T) {
	_, err := DecodeMapping([]byte(`{"children": []}`))
	assert.Error(t, err)
}

func TestDecodeProject(t *testing.T) {
	data := []byte(`{
		"name": "my-game",
		"tree": {
			"$className": "DataModel",
			"ReplicatedStorage": {
				"Shared": {"$path": "src/shared"},
				"Packages": {"$path": "Packages"}
			},
			"ServerScriptService": {
				"$className": "ServerScriptService",
				"Server": {"$path": "src/server"}
			}
		}
	}`)

	p, err := DecodeProject(data)
	require.NoError(t, err)
	assert.Equal(t, "my-game", p.Name)
	assert.Equal(t, "DataModel", p.Tree.ClassName)

	rs := p.Tree.Children["ReplicatedStorage"]
	require.NotNil(t, rs)
	assert.True(t, rs.IsContainer())
	assert.Equal(t, "src/shared", rs.Children["Shared"].Path)
	assert.Equal(t, "Packages", rs.Children["Packages"].Path)
	assert.Equal(t, "src/server", p.Tree.Children["ServerScriptService"].Children["Server"].Path)
}

func TestDecodeProject_OptionalPath(t *testing.T) {
	data := []byte(`{
		"name": "g",
		"tree": {"Tests": {"$path": {"optional": "tests"}}}
	}`)
	p, err := DecodeProject(data)
	require.NoError(t, err)
	assert.Equal(t, "tests", p.Tree.Children["Tests"].Path)
}

func TestDecodeProject_SkipsUnknownMetaKeys(t *testing.T) {
	data := []byte(`{
		"name": "g",
		"tree": {
			"Workspace": {"$ignoreUnknownInstances": true, "$properties": {"Gravity": 50}}
		}
	}`)
	p, err := DecodeProject(data)
	require.NoError(t, err)
	require.NotNil(t, p.Tree.Children["Workspace"])
	assert.False(t, p.Tree.Children["Workspace"].IsContainer())
}

func TestDecodeProject_DepthCap(t *testing.T) {
	// Build a tree nested beyond MaxDepth.
	var b strings.Builder
	b.WriteString(`{"name":"g","tree":`)
	for i := 0; i <= MaxDepth+1; i++ {
		b.WriteString(`{"N":`)
	}
	b.WriteString(`{}`)
	for i := 0; i <= MaxDepth+1; i++ {
		b.WriteString(`}`)
	}
	b.WriteString(`}`)

	_, err := DecodeProject([]byte(b.String()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested deeper")
}

func TestDecodeProject_MissingTree(t *testing.T) {
	_, err := DecodeProject([]byte(`{"name":"g"}`))
	assert.Error(t, err)
}
