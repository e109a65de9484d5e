package matching

import (
	"math"
	"strings"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// MatchSkillTokens 计算两组已归一化技能词之间的重叠得分。
// 任一侧为空得0分。岗位技能命中的条件: 候选人任一技能与其
// 相等、是它的子串、或包含它。返回的匹配列表只含岗位侧的词。
func MatchSkillTokens(jobTokens, candidateTokens []string) types.SkillMatchResult {
	if len(jobTokens) == 0 || len(candidateTokens) == 0 {
		return types.SkillMatchResult{Score: 0, MatchedSkills: []string{}}
	}

	matched := make([]string, 0, len(jobTokens))
	for _, jobToken := range jobTokens {
		for _, candToken := range candidateTokens {
			if tokensOverlap(jobToken, candToken) {
				matched = append(matched, jobToken)
				break
			}
		}
	}

	score := math.Round(100 * float64(len(matched)) / float64(len(jobTokens)))
	return types.SkillMatchResult{Score: score, MatchedSkills: matched}
}

// tokensOverlap 相等或互为子串即视为命中
func tokensOverlap(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchSkills 计算岗位技能要求与候选人技能列表的重叠得分
func (e *Engine) MatchSkills(jobSkills []string, candidateSkills []types.SkillEntry) types.SkillMatchResult {
	jobTokens := e.normalizer.NormalizeAll(jobSkills)
	candTokens := e.normalizer.NormalizeEntries(candidateSkills)
	return MatchSkillTokens(jobTokens, candTokens)
}

// MatchExpertise 复用技能重叠算法比较岗位考察方向与候选人专长标签
func (e *Engine) MatchExpertise(focusAreas, expertise []string) types.SkillMatchResult {
	jobTokens := e.normalizer.NormalizeAll(focusAreas)
	candTokens := e.normalizer.NormalizeAll(expertise)
	return MatchSkillTokens(jobTokens, candTokens)
}
