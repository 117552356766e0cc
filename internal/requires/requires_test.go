package requires

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rbxnav/internal/aliases"
)

func binding(name string, segments ...string) aliases.Binding {
	return aliases.Binding{Name: name, Segments: segments, Depth: len(segments)}
}

func TestBuild_DeepestAliasWins(t *testing.T) {
	// Depth-sorted input, as aliases.Extract produces.
	bindings := []aliases.Binding{
		binding("B", "game", "X", "Y"),
		binding("A", "game", "X"),
	}
	got := Build("game.X.Y.Z", bindings, "", DefaultOptions())
	assert.Equal(t, "B.Z", got)
}

func TestBuild_AliasCoversWholeTarget(t *testing.T) {
	bindings := []aliases.Binding{binding("Utils", "game", "ReplicatedStorage", "Utils")}
	got := Build("game.ReplicatedStorage.Utils", bindings, "", DefaultOptions())
	assert.Equal(t, "Utils", got)
}

func TestBuild_AliasPrefixRespectsSegmentBoundaries(t *testing.T) {
	// An alias for game.Sha must not claim game.Shared.
	bindings := []aliases.Binding{binding("S", "game", "Sha")}
	got := Build("game.Shared.Utils", bindings, "", Options{PathStyle: StyleAbsolute, MaxParentHops: 3})
	assert.Equal(t, "game.Shared.Utils", got)
}

func TestBuild_AliasFormatsBracketSuffix(t *testing.T) {
	bindings := []aliases.Binding{binding("RS", "game", "ReplicatedStorage")}
	got := Build(`game.ReplicatedStorage["My Lib"].Utils`, bindings, "", DefaultOptions())
	assert.Equal(t, `RS["My Lib"].Utils`, got)
}

func TestBuild_RelativeHops(t *testing.T) {
	// Three hops up from Current (through Z and Y) reach X, then Sibling.
	got := Build("game.X.Sibling", nil, "game.X.Y.Z.Current", DefaultOptions())
	assert.Equal(t, "script.Parent.Parent.Parent.Sibling", got)
}

func TestBuild_RelativeSibling(t *testing.T) {
	got := Build("game.X.Y.Z.Janitor", nil, "game.X.Y.Z.Signal", DefaultOptions())
	assert.Equal(t, "script.Parent.Janitor", got)
}

func TestBuild_RelativeRequiresSharedContainer(t *testing.T) {
	// Only the root in common: no relative expression.
	got := Build("game.A.Mod", nil, "game.B.Current", DefaultOptions())
	assert.Equal(t, "game.A.Mod", got)
}

func TestBuild_RelativeHopLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxParentHops = 1
	got := Build("game.X.Sibling", nil, "game.X.Y.Z.Current", opts)
	assert.Equal(t, "game.X.Sibling", got)
}

func TestBuild_AbsoluteStyleSkipsRelative(t *testing.T) {
	opts := DefaultOptions()
	opts.PathStyle = StyleAbsolute
	got := Build("game.X.Sibling", nil, "game.X.Y.Z.Current", opts)
	assert.Equal(t, "game.X.Sibling", got)
}

func TestBuild_NoCurrentPathSkipsRelative(t *testing.T) {
	got := Build("game.X.Sibling", nil, "", DefaultOptions())
	assert.Equal(t, "game.X.Sibling", got)
}

func TestBuild_ExplicitAccessor(t *testing.T) {
	opts := DefaultOptions()
	opts.UseExplicitAccessor = true
	got := Build("game.ReplicatedStorage.Packages.Janitor", nil, "", opts)
	assert.Equal(t, `game:GetService("ReplicatedStorage").Packages.Janitor`, got)
}

func TestBuild_FallbackReturnsTargetVerbatim(t *testing.T) {
	got := Build("game.ReplicatedStorage.Packages.Janitor", nil, "", DefaultOptions())
	assert.Equal(t, "game.ReplicatedStorage.Packages.Janitor", got)
}

func TestBuild_ExtractedAliases(t *testing.T) {
	doc := `local V1 = game:GetService("ReplicatedStorage")
local V2 = V1.Shared`
	bindings := aliases.Extract(doc)
	got := Build("game.ReplicatedStorage.Shared.Utils", bindings, "", DefaultOptions())
	assert.Equal(t, "V2.Utils", got)
}
