package matching

import (
	"math"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/config"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// Engine 候选人排序引擎。所有评分方法都是纯函数，
// 构造后只读，可被任意数量的goroutine并发调用。
type Engine struct {
	normalizer *SkillNormalizer
	cfg        config.MatcherConfig
}

// NewEngine 创建排序引擎
func NewEngine(cfg config.MatcherConfig) *Engine {
	return &Engine{
		normalizer: NewSkillNormalizer(cfg.Synonyms),
		cfg:        cfg,
	}
}

// Normalizer 返回引擎使用的技能归一化器
func (e *Engine) Normalizer() *SkillNormalizer {
	return e.normalizer
}

// CompositeResult 单个候选人的完整评分结果
type CompositeResult struct {
	Total         float64
	MatchedSkills []string
	Breakdown     types.ScoreBreakdown
	Readiness     types.InterviewReadiness
	Insights      types.AiInsights
}

// Score 计算候选人对岗位的综合匹配分。
// 任何核心数据缺失(岗位、候选人或其账号为空)时返回全零结果而不是报错。
// 经验分在加权前按就绪度/洞察水平获得乘法加成，结果封顶100。
func (e *Engine) Score(job *types.JobSnapshot, candidate *types.CandidateSnapshot,
	interviews []types.InterviewSnapshot, reports []types.ReportSnapshot) CompositeResult {
	if job == nil || candidate == nil || candidate.Account == nil {
		return CompositeResult{MatchedSkills: []string{}}
	}

	jobSkillTokens := e.normalizer.NormalizeAll(job.RequiredSkills)
	candSkillTokens := e.normalizer.NormalizeEntries(candidate.Skills)

	skillMatch := MatchSkillTokens(jobSkillTokens, candSkillTokens)
	readiness := e.ScoreReadiness(job, jobSkillTokens, interviews)
	insights := AggregateInsights(reports)
	experience := MatchExperience(job.SeniorityLevel, candidate.PerformanceScore, candidate.InterviewCount)
	location := MatchLocation(job.Location, candidate.Account.Country)
	expertise := e.MatchExpertise(job.FocusAreas, candidate.Account.Expertise)
	bio := TextSimilarity(job.Description, candidate.Account.Bio)

	// 面试或报告表现突出的候选人，其经验分获得乘法加成
	boosted := experience
	switch {
	case readiness.ReadinessScore >= 70 || insights.AiInsightScore >= 70:
		boosted = experience * 1.3
	case readiness.ReadinessScore >= 50 || insights.AiInsightScore >= 50:
		boosted = experience * 1.15
	}
	if boosted > 100 {
		boosted = 100
	}

	w := e.cfg.Weights
	breakdown := types.ScoreBreakdown{
		Skills:             skillMatch.Score,
		InterviewReadiness: readiness.ReadinessScore,
		AiInsights:         insights.AiInsightScore,
		Experience:         boosted,
		Location:           location,
		ExpertiseOverlap:   expertise.Score,
		BioSimilarity:      bio,
	}

	total := math.Round(
		w.Skills*breakdown.Skills +
			w.InterviewReadiness*breakdown.InterviewReadiness +
			w.AiInsights*breakdown.AiInsights +
			w.Experience*breakdown.Experience +
			w.Location*breakdown.Location +
			w.ExpertiseOverlap*breakdown.ExpertiseOverlap +
			w.BioSimilarity*breakdown.BioSimilarity)
	if total > 100 {
		total = 100
	} else if total < 0 {
		total = 0
	}

	return CompositeResult{
		Total:         total,
		MatchedSkills: skillMatch.MatchedSkills,
		Breakdown:     breakdown,
		Readiness:     readiness,
		Insights:      insights,
	}
}
