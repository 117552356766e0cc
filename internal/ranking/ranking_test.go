package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbxnav/internal/fuzzy"
	"rbxnav/internal/types"
)

type module struct {
	ID   int
	Name string
	Path string
}

func fields(m module) []string {
	return []string{m.Name, m.Path}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	modules := []module{
		{1, "JanitorHelper", "src/JanitorHelper.luau"},
		{2, "Janitor", "src/Janitor.luau"},
		{3, "Signal", "src/Signal.luau"},
	}
	ranked := Rank("Janitor", modules, fields, fuzzy.DefaultOptions())
	require.NotEmpty(t, ranked)
	assert.Equal(t, 2, ranked[0].Item.ID)
	assert.Equal(t, types.TierExact, ranked[0].Tier)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRank_DropsNonMatches(t *testing.T) {
	opts := fuzzy.DefaultOptions()
	opts.AllowVeryFuzzy = false
	modules := []module{
		{1, "Janitor", "src/Janitor.luau"},
		{2, "Xylophone", "src/Xylophone.luau"},
	}
	ranked := Rank("janitor", modules, fields, opts)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Item.ID)
}

func TestRank_StableForEqualScores(t *testing.T) {
	modules := []module{
		{1, "Janitor", "a/Janitor.luau"},
		{2, "Janitor", "b/Janitor.luau"},
		{3, "Janitor", "c/Janitor.luau"},
	}
	// Score only the name so all three tie exactly.
	ranked := Rank("janitor", modules, func(m module) []string {
		return []string{m.Name}
	}, fuzzy.DefaultOptions())
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Item.ID, ranked[1].Item.ID, ranked[2].Item.ID})
}

func TestRank_BestFieldWins(t *testing.T) {
	modules := []module{
		// The name is a weak match but the path contains the query.
		{1, "ZZZ", "src/Network/Remotes.luau"},
	}
	ranked := Rank("Remotes", modules, fields, fuzzy.DefaultOptions())
	require.Len(t, ranked, 1)
	assert.Equal(t, types.TierSubstring, ranked[0].Tier)
}

func TestRank_EmptyQueryKeepsCandidateOrder(t *testing.T) {
	modules := []module{
		{1, "B", "b"}, {2, "A", "a"}, {3, "C", "c"},
	}
	ranked := Rank("", modules, fields, fuzzy.DefaultOptions())
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Item.ID, ranked[1].Item.ID, ranked[2].Item.ID})
}

func TestRank_EmptyInput(t *testing.T) {
	assert.Empty(t, Rank("q", nil, fields, fuzzy.DefaultOptions()))
}
