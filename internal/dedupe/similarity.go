package dedupe

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TokenSortRatio scores two strings on a 0-100 scale, insensitive to word
// order: both sides are lowercased, split into tokens, sorted and rejoined
// before an edit-distance comparison. "Textile Atlas" and "Atlas Textile"
// score 100.
func TokenSortRatio(a, b string) float64 {
	sa := tokenSort(a)
	sb := tokenSort(b)
	if sa == sb {
		return 100
	}
	if sa == "" || sb == "" {
		return 0
	}

	dist := levenshtein.ComputeDistance(sa, sb)
	la := len([]rune(sa))
	lb := len([]rune(sb))
	max := la
	if lb > max {
		max = lb
	}
	return 100 * (1 - float64(dist)/float64(max))
}

func tokenSort(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
