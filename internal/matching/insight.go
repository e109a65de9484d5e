package matching

import (
	"math"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// AI洞察最终得分的内部权重
const (
	avgReportWeight      = 0.40
	strengthWeight       = 0.20
	skillsAnalysisWeight = 0.25
	progressWeight       = 0.15
)

// AggregateInsights 把候选人的AI报告聚合为洞察得分。
// reports 必须按时间从新到旧排列。只有带有整体评分的报告
// 参与统计，无分数的报告被直接忽略。
func AggregateInsights(reports []types.ReportSnapshot) types.AiInsights {
	var result types.AiInsights

	scored := make([]types.ReportSnapshot, 0, len(reports))
	for _, r := range reports {
		if r.Score != nil {
			scored = append(scored, r)
		}
	}
	result.ReportCount = len(scored)
	if len(scored) == 0 {
		return result
	}

	// 平均报告分
	var sum float64
	for _, r := range scored {
		sum += *r.Score
	}
	result.AvgReportScore = sum / float64(len(scored))

	// 优势标签覆盖度: 每个去重标签10分，封顶100
	distinctStrengths := make(map[string]bool)
	for _, r := range scored {
		for _, s := range r.Strengths {
			distinctStrengths[s] = true
		}
	}
	alignment := 10 * float64(len(distinctStrengths))
	if alignment > 100 {
		alignment = 100
	}
	result.StrengthAlignment = alignment

	// 技能分析分: 取最近一份技能分析报告
	for _, r := range scored {
		if r.Type == types.ReportTypeSkillsAnalysis {
			result.SkillAnalysisScore = *r.Score
			break
		}
	}

	// 进步分: 至少两份进步报告时比较最新与最早的分差
	var progress []types.ReportSnapshot
	for _, r := range scored {
		if r.Type == types.ReportTypeProgress {
			progress = append(progress, r)
		}
	}
	switch {
	case len(progress) >= 2:
		latest := *progress[0].Score
		earliest := *progress[len(progress)-1].Score
		delta := latest - earliest + 50
		if delta < 0 {
			delta = 0
		} else if delta > 100 {
			delta = 100
		}
		result.ProgressScore = delta
	case len(progress) == 1:
		result.ProgressScore = *progress[0].Score
	}

	result.AiInsightScore = math.Round(
		avgReportWeight*result.AvgReportScore +
			strengthWeight*result.StrengthAlignment +
			skillsAnalysisWeight*result.SkillAnalysisScore +
			progressWeight*result.ProgressScore)

	return result
}
