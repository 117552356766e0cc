package types

// Common system-wide constants
const (
	// DefaultMaxFileSize caps how large a Luau source file may be before the
	// scanner skips it. Generated bundles above this are never require targets.
	DefaultMaxFileSize = 2 * 1024 * 1024 // 2MB per file

	// DefaultMaxFileCount caps a single scan. Covers real game codebases while
	// preventing runaway walks through Packages/_Index vendor trees.
	DefaultMaxFileCount = 50000

	// RootToken is the fixed first segment of every logical path.
	RootToken = "game"
)

// Origin identifies which part of the source tree a candidate came from.
type Origin uint8

const (
	OriginSource Origin = iota // first-party code under the configured root
	OriginPackages             // vendored packages (wally Packages/ tree)
	OriginOther                // anything else that survived the filters
)

func (o Origin) String() string {
	switch o {
	case OriginSource:
		return "source"
	case OriginPackages:
		return "packages"
	case OriginOther:
		return "other"
	default:
		return "unknown"
	}
}

// Tier classifies how a query matched a candidate string, strongest first.
type Tier uint8

const (
	TierNone Tier = iota
	TierFuzzy
	TierSubsequence
	TierSubstring
	TierPrefix
	TierExact
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPrefix:
		return "prefix"
	case TierSubstring:
		return "substring"
	case TierSubsequence:
		return "subsequence"
	case TierFuzzy:
		return "fuzzy"
	case TierNone:
		return "none"
	default:
		return "unknown"
	}
}

// Match is the result of scoring a single query/target pair.
// Score is normalized to [0,1]; IsMatch reports whether the pair cleared the
// configured threshold for its tier.
type Match struct {
	Score   float64
	IsMatch bool
	Tier    Tier
}

// Candidate is one indexable module file. The scanner fills in everything
// except LogicalPath, which the resolver computes once per rebuild; records
// are immutable until the next rebuild replaces the whole set.
type Candidate struct {
	Name        string // display name: file name with extension and role suffix stripped
	Path        string // absolute physical path
	LogicalPath string // game-rooted logical path
	RelPath     string // root-relative display path
	Origin      Origin
	Hash        uint64 // content fingerprint, used to skip unchanged files on rebuild
}
