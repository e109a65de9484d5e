package matching

import "strings"

// MatchExperience 把候选人的历史表现映射到经验档位并与岗位级别比较。
// 基础档位: 表现≥80得100, ≥60得75, ≥40得50, 否则25；
// 面试场次≥10加10分, ≥5加5分(中间值不封顶)。
// 岗位级别未识别时固定返回50——这是刻意保留的中性默认值。
func MatchExperience(seniorityLevel string, performanceScore float64, interviewCount int) float64 {
	var base float64
	switch {
	case performanceScore >= 80:
		base = 100
	case performanceScore >= 60:
		base = 75
	case performanceScore >= 40:
		base = 50
	default:
		base = 25
	}

	if interviewCount >= 10 {
		base += 10
	} else if interviewCount >= 5 {
		base += 5
	}

	level := strings.ToLower(seniorityLevel)
	switch {
	case containsAny(level, "senior", "lead", "principal"):
		if base >= 75 {
			return min100(base)
		}
		return min100(base * 0.5)
	case containsAny(level, "mid", "intermediate"):
		if base >= 50 {
			return min100(base)
		}
		return min100(base * 0.7)
	case containsAny(level, "junior", "entry", "trainee"):
		if base <= 75 {
			return base
		}
		return base * 0.8
	default:
		return 50
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func min100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
