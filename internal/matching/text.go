package matching

import (
	"math"
	"strings"
)

// significantTokens 小写按空白切词，丢弃长度不超过2的词
func significantTokens(text string) map[string]bool {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens[f] = true
		}
	}
	return tokens
}

// TextSimilarity 两段自由文本的Jaccard相似度，返回0-100。
// 任一侧没有有效词时返回0。满足对称性: TextSimilarity(a,b) == TextSimilarity(b,a)。
func TextSimilarity(a, b string) float64 {
	setA := significantTokens(a)
	setB := significantTokens(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return math.Round(100 * float64(intersection) / float64(union))
}
