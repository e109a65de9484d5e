package matching

import "strings"

// MatchLocation 岗位地点与候选人国家的分级匹配，返回0/50/70/100。
// 精确匹配100分；一方包含另一方、或一方是另一方的首字母缩写时70分
// (例如 "United States" 与 "US")；共享任一长度大于2的词50分；否则0分。
func MatchLocation(jobLocation, candidateCountry string) float64 {
	a := strings.ToLower(strings.TrimSpace(jobLocation))
	b := strings.ToLower(strings.TrimSpace(candidateCountry))
	if a == "" || b == "" {
		return 0
	}

	if a == b {
		return 100
	}

	if strings.Contains(a, b) || strings.Contains(b, a) ||
		acronymOf(a) == b || acronymOf(b) == a {
		return 70
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	for _, wa := range wordsA {
		if len(wa) <= 2 {
			continue
		}
		for _, wb := range wordsB {
			if wa == wb {
				return 50
			}
		}
	}

	return 0
}

// acronymOf 多词字符串的首字母缩写，单词字符串返回空串
func acronymOf(s string) string {
	words := strings.Fields(s)
	if len(words) < 2 {
		return ""
	}
	var sb strings.Builder
	for _, w := range words {
		sb.WriteByte(w[0])
	}
	return sb.String()
}
