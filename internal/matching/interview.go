package matching

import (
	"strings"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// 单场面试相关性的各项权重
const (
	roleTitleWeight      = 40.0
	roleContainWeight    = 25.0 // 标题包含关系得满权重的62.5%
	sharedWordPoints     = 5.0
	techStackWeight      = 35.0
	typeExactWeight      = 15.0
	typeContainWeight    = 8.0 // 类型包含关系得满权重的约53%
	jobApplicationBonus  = 10.0
	recentWindowSize     = 3
	avgScoreWeight       = 0.6
	recentScoreWeight    = 0.4
	highRelevanceBonus   = 10.0
	mediumRelevanceBonus = 5.0
)

// InterviewRelevance 估计一场历史面试对指定岗位的适用度，返回0-100。
// 由岗位标题相似度(40%)、技术栈重叠(35%)、面试类型匹配(15%)
// 和求职场景加分(+10)加权求和，封顶100。
// jobSkillTokens 是已归一化的岗位技能词，由调用方预先算好避免重复归一化。
func (e *Engine) InterviewRelevance(job *types.JobSnapshot, jobSkillTokens []string, iv types.InterviewSnapshot) float64 {
	var score float64

	// 岗位标题相似度
	jobTitle := strings.ToLower(strings.TrimSpace(job.Title))
	roleTitle := strings.ToLower(strings.TrimSpace(iv.RoleTitle))
	switch {
	case jobTitle != "" && jobTitle == roleTitle:
		score += roleTitleWeight
	case jobTitle != "" && roleTitle != "" &&
		(strings.Contains(jobTitle, roleTitle) || strings.Contains(roleTitle, jobTitle)):
		score += roleContainWeight
	default:
		shared := sharedSignificantWords(jobTitle, roleTitle)
		points := float64(shared) * sharedWordPoints
		if points > roleTitleWeight {
			points = roleTitleWeight
		}
		score += points
	}

	// 技术栈重叠: 岗位技能在面试技术栈中的命中比例
	if len(jobSkillTokens) > 0 {
		techTokens := e.techStackTokens(iv.TechStack)
		if len(techTokens) > 0 {
			hit := 0
			for _, jobToken := range jobSkillTokens {
				for _, tech := range techTokens {
					if tokensOverlap(jobToken, tech) {
						hit++
						break
					}
				}
			}
			score += techStackWeight * float64(hit) / float64(len(jobSkillTokens))
		}
	}

	// 面试类型与岗位考察方向的匹配
	ivType := strings.ToLower(strings.TrimSpace(iv.Type))
	if ivType != "" {
		best := 0.0
		for _, focus := range job.FocusAreas {
			focus = strings.ToLower(strings.TrimSpace(focus))
			if focus == "" {
				continue
			}
			if focus == ivType {
				best = typeExactWeight
				break
			}
			if strings.Contains(focus, ivType) || strings.Contains(ivType, focus) {
				if typeContainWeight > best {
					best = typeContainWeight
				}
			}
		}
		score += best
	}

	// 求职场景下的面试更有参考价值
	if iv.IsJobApplication {
		score += jobApplicationBonus
	}

	if score > 100 {
		score = 100
	}
	return score
}

// techStackTokens 把逗号分隔的技术栈字符串拆分并归一化
func (e *Engine) techStackTokens(techStack string) []string {
	if strings.TrimSpace(techStack) == "" {
		return nil
	}
	parts := strings.Split(techStack, ",")
	return e.normalizer.NormalizeAll(parts)
}

// sharedSignificantWords 统计两段文本共享的长度大于2的词数
func sharedSignificantWords(a, b string) int {
	setA := significantTokens(a)
	setB := significantTokens(b)
	shared := 0
	for token := range setA {
		if setB[token] {
			shared++
		}
	}
	return shared
}

// ScoreReadiness 把候选人的历史面试聚合为就绪度。
// interviews 必须按时间从新到旧排列——引擎信任调用方的排序，不自行重排。
// 相关性达到阈值、已定稿且有分数的面试才参与就绪度计算；
// 相关性统计则覆盖全部面试。没有可用面试时就绪度为0但统计照常返回。
func (e *Engine) ScoreReadiness(job *types.JobSnapshot, jobSkillTokens []string, interviews []types.InterviewSnapshot) types.InterviewReadiness {
	result := types.InterviewReadiness{
		RelevanceInfo: types.RelevanceInfo{TotalInterviews: len(interviews)},
	}
	if len(interviews) == 0 {
		return result
	}

	var totalRelevance float64
	var relevantRelevanceSum float64
	var usableScores []float64

	for _, iv := range interviews {
		relevance := e.InterviewRelevance(job, jobSkillTokens, iv)
		totalRelevance += relevance

		if relevance < e.cfg.RelevanceThreshold {
			continue
		}
		result.RelevanceInfo.RelevantInterviews++
		relevantRelevanceSum += relevance

		if iv.Finalized && iv.Score != nil {
			usableScores = append(usableScores, *iv.Score)
		}
	}

	result.RelevanceInfo.AvgRelevanceScore = totalRelevance / float64(len(interviews))

	if len(usableScores) == 0 {
		return result
	}

	var sum float64
	for _, s := range usableScores {
		sum += s
	}
	avg := sum / float64(len(usableScores))

	// 最近几场面试单独加权，突出近期状态
	recentN := recentWindowSize
	if len(usableScores) < recentN {
		recentN = len(usableScores)
	}
	var recentSum float64
	for _, s := range usableScores[:recentN] {
		recentSum += s
	}
	recent := recentSum / float64(recentN)

	readiness := avgScoreWeight*avg + recentScoreWeight*recent

	avgRelevantRelevance := relevantRelevanceSum / float64(result.RelevanceInfo.RelevantInterviews)
	if avgRelevantRelevance >= 70 {
		readiness += highRelevanceBonus
	} else if avgRelevantRelevance >= 50 {
		readiness += mediumRelevanceBonus
	}

	if readiness > 100 {
		readiness = 100
	}

	result.ReadinessScore = readiness
	result.InterviewCount = len(usableScores)
	result.AvgOverallScore = avg
	result.RecentPerformance = recent
	return result
}
