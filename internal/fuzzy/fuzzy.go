// Package fuzzy scores a query string against a candidate string.
//
// Short-circuit tiers (exact, prefix, substring) handle the common cases;
// everything else combines a keyboard-aware edit distance, a greedy
// subsequence match and a character-frequency overlap. Scoring is pure,
// case-insensitive and deterministic.
package fuzzy

import (
	"strings"

	"rbxnav/internal/types"
)

// Scoring constants.
const (
	emptyQueryScore = 0.1 // empty query matches everything, weakly

	prefixBase    = 0.9
	prefixSpan    = 0.1
	substringBase = 0.7
	substringSpan = 0.2

	adjacentSubCost   = 0.5
	transpositionCost = 0.5

	subseqGapRate       = 0.02
	subseqGapPenaltyCap = 0.3
	subseqTierThreshold = 0.8

	firstCharBonus = 0.05

	salvageFreqThreshold = 0.7
	salvageFactor        = 0.5
)

// Default combination weights.
const (
	DefaultEditWeight   = 0.40
	DefaultSubseqWeight = 0.35
	DefaultFreqWeight   = 0.25
	DefaultMinScore     = 0.5
)

// Options configures the combined scorer.
type Options struct {
	MinScore       float64
	AllowVeryFuzzy bool // salvage scrambled-but-character-correct queries

	// Combination weights; zero values fall back to the defaults.
	EditWeight   float64
	SubseqWeight float64
	FreqWeight   float64
}

// DefaultOptions returns the aggressive defaults used for interactive
// suggestion queries.
func DefaultOptions() Options {
	return Options{
		MinScore:       DefaultMinScore,
		AllowVeryFuzzy: true,
		EditWeight:     DefaultEditWeight,
		SubseqWeight:   DefaultSubseqWeight,
		FreqWeight:     DefaultFreqWeight,
	}
}

func (o Options) weights() (edit, subseq, freq float64) {
	edit, subseq, freq = o.EditWeight, o.SubseqWeight, o.FreqWeight
	if edit == 0 && subseq == 0 && freq == 0 {
		return DefaultEditWeight, DefaultSubseqWeight, DefaultFreqWeight
	}
	return edit, subseq, freq
}

// Score rates how well query matches target.
func Score(query, target string, opts Options) types.Match {
	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(target))

	if len(q) == 0 {
		return types.Match{Score: emptyQueryScore, IsMatch: true, Tier: types.TierFuzzy}
	}
	if string(q) == string(t) {
		return types.Match{Score: 1.0, IsMatch: true, Tier: types.TierExact}
	}
	if len(t) == 0 {
		return types.Match{Tier: types.TierNone}
	}

	ratio := float64(len(q)) / float64(len(t))
	if strings.HasPrefix(string(t), string(q)) {
		return types.Match{Score: prefixBase + prefixSpan*ratio, IsMatch: true, Tier: types.TierPrefix}
	}
	if strings.Contains(string(t), string(q)) {
		return types.Match{Score: substringBase + substringSpan*ratio, IsMatch: true, Tier: types.TierSubstring}
	}

	minLen, maxLen := len(q), len(t)
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}

	editSim := 1.0 - keyboardDistance(q, t)/float64(maxLen)
	subseqSim := subsequenceSimilarity(q, t)
	freqSim := frequencySimilarity(q, t, maxLen)

	we, ws, wf := opts.weights()
	score := we*editSim + ws*subseqSim + wf*freqSim
	if q[0] == t[0] {
		score += firstCharBonus
	}
	score *= 0.7 + 0.3*float64(minLen)/float64(maxLen)
	score = clamp01(score)

	switch {
	case subseqSim >= subseqTierThreshold:
		return types.Match{Score: score, IsMatch: true, Tier: types.TierSubsequence}
	case score >= opts.MinScore:
		return types.Match{Score: score, IsMatch: true, Tier: types.TierFuzzy}
	case opts.AllowVeryFuzzy && freqSim >= salvageFreqThreshold:
		// Anagram-like typos: the characters are right, the order is not.
		if s := freqSim * salvageFactor; s > score {
			score = s
		}
		return types.Match{Score: score, IsMatch: true, Tier: types.TierFuzzy}
	default:
		return types.Match{Score: score, Tier: types.TierNone}
	}
}

// keyboardDistance is a Damerau-Levenshtein variant: substituting a key for
// one of its neighbours costs 0.5, swapping two adjacent characters costs
// 0.5, everything else is the standard unit cost.
func keyboardDistance(a, b []rune) float64 {
	la, lb := len(a), len(b)
	if la == 0 {
		return float64(lb)
	}
	if lb == 0 {
		return float64(la)
	}

	rows := make([][]float64, la+1)
	for i := range rows {
		rows[i] = make([]float64, lb+1)
		rows[i][0] = float64(i)
	}
	for j := 0; j <= lb; j++ {
		rows[0][j] = float64(j)
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			sub := 1.0
			if a[i-1] == b[j-1] {
				sub = 0
			} else if Adjacent(a[i-1], b[j-1]) {
				sub = adjacentSubCost
			}

			d := rows[i-1][j] + 1 // deletion
			if ins := rows[i][j-1] + 1; ins < d {
				d = ins
			}
			if rep := rows[i-1][j-1] + sub; rep < d {
				d = rep
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if tr := rows[i-2][j-2] + transpositionCost; tr < d {
					d = tr
				}
			}
			rows[i][j] = d
		}
	}
	return rows[la][lb]
}

// subsequenceSimilarity greedily matches query characters in order against
// the target, then charges a capped penalty for the gaps between matches.
func subsequenceSimilarity(q, t []rune) float64 {
	matched := 0
	gaps := 0
	last := -1
	pos := 0
	for _, qc := range q {
		found := -1
		for i := pos; i < len(t); i++ {
			if t[i] == qc {
				found = i
				break
			}
		}
		if found < 0 {
			continue
		}
		if last >= 0 {
			gaps += found - last - 1
		}
		last = found
		pos = found + 1
		matched++
	}

	penalty := subseqGapRate * float64(gaps)
	if penalty > subseqGapPenaltyCap {
		penalty = subseqGapPenaltyCap
	}
	sim := float64(matched)/float64(len(q)) - penalty
	if sim < 0 {
		return 0
	}
	return sim
}

// frequencySimilarity measures the multiset overlap of characters,
// normalized by the longer string. Robust to scrambled order.
func frequencySimilarity(q, t []rune, maxLen int) float64 {
	counts := make(map[rune]int, len(q))
	for _, r := range q {
		counts[r]++
	}
	overlap := 0
	for _, r := range t {
		if counts[r] > 0 {
			counts[r]--
			overlap++
		}
	}
	return float64(overlap) / float64(maxLen)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
