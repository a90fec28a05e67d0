package retrieval

import (
	"strings"
)

// Scorer computes lexical relevance between a query and chunk content. It is
// pure and deterministic: the same inputs always yield the same score, so
// retrieval results are reproducible across runs.
type Scorer struct{}

// NewScorer creates a lexical relevance scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score returns the fraction of significant query tokens that appear in the
// chunk content. Tokens are whitespace-separated and lowercased; query tokens
// of three or more characters count. A query token matches when it contains a
// chunk token or a chunk token contains it, so "photosynthesis" matches
// "photosynthesis," and "synth" alike. No significant query tokens yields 0.
func (s *Scorer) Score(query, content string) float64 {
	queryTokens := significantTokens(query)
	if len(queryTokens) == 0 {
		return 0
	}

	chunkTokens := strings.Fields(strings.ToLower(content))

	matches := 0
	for _, qt := range queryTokens {
		if containsToken(chunkTokens, qt) {
			matches++
		}
	}

	return float64(matches) / float64(len(queryTokens))
}

// significantTokens lowercases and splits the query, dropping tokens of two
// characters or fewer ("is", "of", "a").
func significantTokens(query string) []string {
	var tokens []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(token)) > 2 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// containsToken reports whether the query token matches any chunk token by
// substring containment in either direction.
func containsToken(chunkTokens []string, queryToken string) bool {
	for _, ct := range chunkTokens {
		if strings.Contains(ct, queryToken) || strings.Contains(queryToken, ct) {
			return true
		}
	}
	return false
}
