package analysis

import "sort"

// Rank sorts symbol scores descending and keeps the top n. The sort is
// stable, so symbols with equal scores keep their input order. The input
// slice is not modified.
func Rank(scores []SymbolScore, topN int) []SymbolScore {
	ranked := make([]SymbolScore, len(scores))
	copy(ranked, scores)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topN >= 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
