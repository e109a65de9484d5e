package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

func reportAt(daysAgo int, kind types.ReportType, score *float64, strengths ...string) types.ReportSnapshot {
	return types.ReportSnapshot{
		ReportID:  "r-" + string(kind),
		Type:      kind,
		Score:     score,
		Strengths: strengths,
		CreatedAt: time.Now().AddDate(0, 0, -daysAgo),
	}
}

func TestAggregateInsightsEmpty(t *testing.T) {
	result := AggregateInsights(nil)
	assert.Zero(t, result.AiInsightScore)
	assert.Zero(t, result.ReportCount)
}

func TestAggregateInsightsIgnoresUnscoredReports(t *testing.T) {
	reports := []types.ReportSnapshot{
		reportAt(1, types.ReportTypeComprehensive, nil),
	}
	result := AggregateInsights(reports)
	assert.Zero(t, result.AiInsightScore, "没有分数的报告不参与聚合")
	assert.Zero(t, result.ReportCount)
}

func TestAggregateInsightsAverageAndStrengths(t *testing.T) {
	reports := []types.ReportSnapshot{
		reportAt(1, types.ReportTypeComprehensive, floatPtr(80), "communication", "problem solving"),
		reportAt(5, types.ReportTypeComprehensive, floatPtr(60), "communication", "algorithms"),
	}
	result := AggregateInsights(reports)

	assert.Equal(t, 2, result.ReportCount)
	assert.Equal(t, float64(70), result.AvgReportScore)
	// 3个去重优势标签 × 10
	assert.Equal(t, float64(30), result.StrengthAlignment)
	// 0.4*70 + 0.2*30 = 34
	assert.Equal(t, float64(34), result.AiInsightScore)
}

func TestAggregateInsightsSkillsAnalysisTakesMostRecent(t *testing.T) {
	reports := []types.ReportSnapshot{
		reportAt(1, types.ReportTypeSkillsAnalysis, floatPtr(88)),
		reportAt(9, types.ReportTypeSkillsAnalysis, floatPtr(40)),
	}
	result := AggregateInsights(reports)
	assert.Equal(t, float64(88), result.SkillAnalysisScore, "应取最近一份技能分析报告的分数")
}

func TestAggregateInsightsProgressDelta(t *testing.T) {
	reports := []types.ReportSnapshot{
		reportAt(1, types.ReportTypeProgress, floatPtr(80)),
		reportAt(30, types.ReportTypeProgress, floatPtr(50)),
	}
	result := AggregateInsights(reports)
	// 80 - 50 + 50 = 80
	assert.Equal(t, float64(80), result.ProgressScore)
}

func TestAggregateInsightsProgressSingleReport(t *testing.T) {
	reports := []types.ReportSnapshot{
		reportAt(1, types.ReportTypeProgress, floatPtr(65)),
	}
	result := AggregateInsights(reports)
	assert.Equal(t, float64(65), result.ProgressScore, "只有一份进步报告时直接使用其分数")
}

func TestAggregateInsightsProgressClamped(t *testing.T) {
	reports := []types.ReportSnapshot{
		reportAt(1, types.ReportTypeProgress, floatPtr(100)),
		reportAt(30, types.ReportTypeProgress, floatPtr(10)),
	}
	result := AggregateInsights(reports)
	// 100 - 10 + 50 = 140 → 封顶100
	assert.Equal(t, float64(100), result.ProgressScore)

	reports = []types.ReportSnapshot{
		reportAt(1, types.ReportTypeProgress, floatPtr(0)),
		reportAt(30, types.ReportTypeProgress, floatPtr(90)),
	}
	result = AggregateInsights(reports)
	// 0 - 90 + 50 = -40 → 下限0
	assert.Zero(t, result.ProgressScore)
}
