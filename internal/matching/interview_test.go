package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

func floatPtr(v float64) *float64 {
	return &v
}

func testJob() *types.JobSnapshot {
	return &types.JobSnapshot{
		JobID:          "job-1",
		OrganizationID: "org-1",
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go", "PostgreSQL", "Docker"},
		Location:       "Palestine",
		SeniorityLevel: "Mid-level",
		Description:    "build scalable backend services",
		FocusAreas:     []string{"backend", "system design"},
	}
}

func (e *Engine) jobTokens(job *types.JobSnapshot) []string {
	return e.normalizer.NormalizeAll(job.RequiredSkills)
}

func TestInterviewRelevanceExactTitleMatch(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	iv := types.InterviewSnapshot{
		RoleTitle: "Backend Engineer",
		TechStack: "golang, postgres, docker",
		Type:      "backend",
	}
	relevance := e.InterviewRelevance(job, e.jobTokens(job), iv)

	// 标题40 + 技术栈35 + 类型15
	assert.Equal(t, float64(90), relevance)
}

func TestInterviewRelevanceJobApplicationBonus(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	base := types.InterviewSnapshot{RoleTitle: "Backend Engineer", TechStack: "golang, postgres, docker", Type: "backend"}
	boosted := base
	boosted.IsJobApplication = true

	withBonus := e.InterviewRelevance(job, e.jobTokens(job), boosted)
	withoutBonus := e.InterviewRelevance(job, e.jobTokens(job), base)
	assert.Equal(t, withoutBonus+10, withBonus, "求职场景面试应加10分")
}

func TestInterviewRelevanceCappedAt100(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	iv := types.InterviewSnapshot{
		RoleTitle:        "Backend Engineer",
		TechStack:        "golang, postgres, docker",
		Type:             "backend",
		IsJobApplication: true,
	}
	relevance := e.InterviewRelevance(job, e.jobTokens(job), iv)
	assert.Equal(t, float64(100), relevance, "相关性必须封顶100")
}

func TestInterviewRelevanceTitleContainment(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	iv := types.InterviewSnapshot{RoleTitle: "Senior Backend Engineer"}
	relevance := e.InterviewRelevance(job, e.jobTokens(job), iv)
	assert.Equal(t, float64(25), relevance, "标题包含关系应得满权重的62.5%")
}

func TestInterviewRelevanceSharedWords(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	iv := types.InterviewSnapshot{RoleTitle: "Platform Engineer Interview"}
	relevance := e.InterviewRelevance(job, e.jobTokens(job), iv)
	assert.Equal(t, float64(5), relevance, "共享1个有效词应得5分")
}

func TestInterviewRelevanceFractionalScoreUnrounded(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	iv := types.InterviewSnapshot{TechStack: "golang"}
	relevance := e.InterviewRelevance(job, e.jobTokens(job), iv)

	// 3个岗位技能命中1个: 35*(1/3)，相关性保留小数不做取整
	assert.InDelta(t, 35.0/3.0, relevance, 1e-9)
}

func TestScoreReadinessEmptyInterviews(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	readiness := e.ScoreReadiness(job, e.jobTokens(job), nil)
	assert.Zero(t, readiness.ReadinessScore)
	assert.Zero(t, readiness.RelevanceInfo.TotalInterviews)
}

func TestScoreReadinessUnfinalizedNeverContributes(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	interviews := []types.InterviewSnapshot{
		{RoleTitle: "Backend Engineer", TechStack: "golang, postgres, docker", Type: "backend", Finalized: false, Score: floatPtr(95)},
	}
	readiness := e.ScoreReadiness(job, e.jobTokens(job), interviews)

	assert.Zero(t, readiness.ReadinessScore, "未定稿面试即使高度相关也不参与就绪度")
	assert.Zero(t, readiness.AvgOverallScore)
	assert.Zero(t, readiness.RecentPerformance)
	// 但相关性统计仍然覆盖它
	assert.Equal(t, 1, readiness.RelevanceInfo.TotalInterviews)
	assert.Equal(t, 1, readiness.RelevanceInfo.RelevantInterviews)
}

func TestScoreReadinessNilScoreNeverContributes(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	interviews := []types.InterviewSnapshot{
		{RoleTitle: "Backend Engineer", TechStack: "golang", Type: "backend", Finalized: true, Score: nil},
	}
	readiness := e.ScoreReadiness(job, e.jobTokens(job), interviews)
	assert.Zero(t, readiness.ReadinessScore, "无分数面试不参与就绪度")
	assert.Zero(t, readiness.InterviewCount)
}

func TestScoreReadinessAggregation(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	// 按从新到旧排列的4场高相关面试
	interviews := []types.InterviewSnapshot{
		{RoleTitle: "Backend Engineer", TechStack: "golang, postgres, docker", Type: "backend", Finalized: true, Score: floatPtr(90)},
		{RoleTitle: "Backend Engineer", TechStack: "golang, postgres, docker", Type: "backend", Finalized: true, Score: floatPtr(80)},
		{RoleTitle: "Backend Engineer", TechStack: "golang, postgres, docker", Type: "backend", Finalized: true, Score: floatPtr(70)},
		{RoleTitle: "Backend Engineer", TechStack: "golang, postgres, docker", Type: "backend", Finalized: true, Score: floatPtr(40)},
	}
	readiness := e.ScoreReadiness(job, e.jobTokens(job), interviews)

	require.Equal(t, 4, readiness.InterviewCount)
	assert.Equal(t, float64(70), readiness.AvgOverallScore)
	assert.Equal(t, float64(80), readiness.RecentPerformance, "最近3场为90/80/70")

	// 0.6*70 + 0.4*80 + 高相关加分10 = 84
	assert.Equal(t, float64(84), readiness.ReadinessScore)
	assert.Equal(t, 4, readiness.RelevanceInfo.TotalInterviews)
	assert.Equal(t, 4, readiness.RelevanceInfo.RelevantInterviews)
}

func TestScoreReadinessBelowThresholdFilteredOut(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	// 与岗位毫不相关的面试
	interviews := []types.InterviewSnapshot{
		{RoleTitle: "Marketing Specialist", TechStack: "excel", Type: "hr", Finalized: true, Score: floatPtr(99)},
	}
	readiness := e.ScoreReadiness(job, e.jobTokens(job), interviews)

	assert.Zero(t, readiness.ReadinessScore, "低相关性面试不参与就绪度")
	assert.Equal(t, 1, readiness.RelevanceInfo.TotalInterviews)
	assert.Zero(t, readiness.RelevanceInfo.RelevantInterviews)
}

func TestScoreReadinessCappedAt100(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	interviews := []types.InterviewSnapshot{
		{RoleTitle: "Backend Engineer", TechStack: "golang, postgres, docker", Type: "backend", Finalized: true, Score: floatPtr(100), IsJobApplication: true},
		{RoleTitle: "Backend Engineer", TechStack: "golang, postgres, docker", Type: "backend", Finalized: true, Score: floatPtr(100), IsJobApplication: true},
	}
	readiness := e.ScoreReadiness(job, e.jobTokens(job), interviews)
	assert.Equal(t, float64(100), readiness.ReadinessScore)
}
