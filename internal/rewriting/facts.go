package rewriting

import (
	"fmt"
	"regexp"
	"strings"
)

// numericTokenPattern matches the quantitative claims a rewrite must carry
// over verbatim: plain numbers, percentages, and dollar amounts, including
// thousands separators and decimals.
var numericTokenPattern = regexp.MustCompile(`\$?\d[\d,.]*%?`)

// numericTokens extracts all protected numeric tokens from text, trimming
// trailing punctuation the pattern picks up at sentence boundaries.
func numericTokens(text string) []string {
	matches := numericTokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		t := strings.TrimRight(m, ",.")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// tokenCounts builds a multiset of protected tokens.
func tokenCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, t := range numericTokens(text) {
		counts[t]++
	}
	return counts
}

// checkProtectedFacts verifies that a rewrite neither drops nor invents
// quantitative claims: every numeric token of the original must survive,
// and the rewrite must not introduce tokens the original never had.
func checkProtectedFacts(original, rewritten string) error {
	originalCounts := tokenCounts(original)
	rewrittenCounts := tokenCounts(rewritten)

	for token, count := range originalCounts {
		if rewrittenCounts[token] < count {
			return fmt.Errorf("rewrite dropped protected fact %q", token)
		}
	}

	for token, count := range rewrittenCounts {
		if count > originalCounts[token] {
			return fmt.Errorf("rewrite introduced unsupported fact %q", token)
		}
	}

	return nil
}
