package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ReportType AI报告类型
type ReportType string

const (
	// ReportTypeComprehensive 综合评估报告
	ReportTypeComprehensive ReportType = "comprehensive"
	// ReportTypeSkillsAnalysis 技能分析报告
	ReportTypeSkillsAnalysis ReportType = "skills_analysis"
	// ReportTypeProgress 进步趋势报告
	ReportTypeProgress ReportType = "progress"
	// ReportTypePerformanceSummary 表现总结报告
	ReportTypePerformanceSummary ReportType = "performance_summary"
)

// JobSnapshot 岗位快照，排序请求期间不可变
type JobSnapshot struct {
	JobID          string   `json:"job_id"`
	OrganizationID string   `json:"organization_id"`
	Title          string   `json:"title"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location"`
	SeniorityLevel string   `json:"seniority_level"`
	Description    string   `json:"description"`
	FocusAreas     []string `json:"focus_areas"`
}

// AccountSnapshot 候选人关联的账号快照
type AccountSnapshot struct {
	AccountID      string   `json:"account_id"`
	Name           string   `json:"name"`
	Country        string   `json:"country"`
	Bio            string   `json:"bio"`
	Expertise      []string `json:"expertise"`
	PhotoObjectKey string   `json:"photo_object_key,omitempty"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
}

// SkillEntry 候选人技能条目。
// 数据源中技能既可能是裸字符串，也可能是 {name, level} 结构，
// 解码后统一为该结构，评分逻辑不再感知原始形态。
type SkillEntry struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// UnmarshalJSON 同时接受 "react" 与 {"name":"react","level":"advanced"} 两种形态
func (s *SkillEntry) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var bare string
		if err := json.Unmarshal(data, &bare); err != nil {
			return err
		}
		s.Name = bare
		s.Level = ""
		return nil
	}

	type structured struct {
		Name  string `json:"name"`
		Level string `json:"level"`
	}
	var obj structured
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("技能条目既不是字符串也不是 {name, level} 对象: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("结构化技能条目缺少 name 字段")
	}
	s.Name = obj.Name
	s.Level = obj.Level
	return nil
}

// DecodeSkillEntries 解码异构的技能JSON数组（元素可为字符串或对象）
func DecodeSkillEntries(data []byte) ([]SkillEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []SkillEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("解码技能列表失败: %w", err)
	}
	return entries, nil
}

// CandidateSnapshot 候选人快照
type CandidateSnapshot struct {
	CandidateID      string           `json:"candidate_id"`
	Account          *AccountSnapshot `json:"account"`
	Skills           []SkillEntry     `json:"skills"`
	PerformanceScore float64          `json:"performance_score"`
	InterviewCount   int              `json:"interview_count"`
	IsActive         bool             `json:"is_active"`
}

// InterviewSnapshot 模拟面试快照，调用方保证按时间倒序提供
type InterviewSnapshot struct {
	InterviewID      string   `json:"interview_id"`
	RoleTitle        string   `json:"role_title"`
	TechStack        string   `json:"tech_stack"` // 逗号分隔的技术栈
	Type             string   `json:"type"`
	Finalized        bool     `json:"finalized"`
	Score            *float64 `json:"score,omitempty"`
	IsJobApplication bool     `json:"is_job_application"`
}

// ReportSnapshot AI报告快照，调用方保证按时间倒序提供
type ReportSnapshot struct {
	ReportID  string     `json:"report_id"`
	Type      ReportType `json:"type"`
	Score     *float64   `json:"score,omitempty"`
	Strengths []string   `json:"strengths,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// SkillMatchResult 技能匹配结果
type SkillMatchResult struct {
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
}

// RelevanceInfo 面试相关性统计信息，覆盖全部面试（含未达阈值的）
type RelevanceInfo struct {
	TotalInterviews    int     `json:"total_interviews"`
	RelevantInterviews int     `json:"relevant_interviews"`
	AvgRelevanceScore  float64 `json:"avg_relevance_score"`
}

// InterviewReadiness 面试就绪度聚合结果
type InterviewReadiness struct {
	ReadinessScore    float64       `json:"readiness_score"`
	InterviewCount    int           `json:"interview_count"` // 参与就绪度计算的面试数
	AvgOverallScore   float64       `json:"avg_overall_score"`
	RecentPerformance float64       `json:"recent_performance"`
	RelevanceInfo     RelevanceInfo `json:"relevance_info"`
}

// AiInsights AI报告洞察聚合结果
type AiInsights struct {
	AiInsightScore     float64 `json:"ai_insight_score"`
	ReportCount        int     `json:"report_count"`
	AvgReportScore     float64 `json:"avg_report_score"`
	StrengthAlignment  float64 `json:"strength_alignment"`
	SkillAnalysisScore float64 `json:"skill_analysis_score"`
	ProgressScore      float64 `json:"progress_score"`
}

// ScoreBreakdown 各评分组件的明细，均被钳制在[0,100]
type ScoreBreakdown struct {
	Skills             float64 `json:"skills"`
	InterviewReadiness float64 `json:"interview_readiness"`
	AiInsights         float64 `json:"ai_insights"`
	Experience         float64 `json:"experience"`
	Location           float64 `json:"location"`
	ExpertiseOverlap   float64 `json:"expertise_overlap"`
	BioSimilarity      float64 `json:"bio_similarity"`
}

// Suggestion 单个排序结果，按请求新建，不持久化
type Suggestion struct {
	CandidateID        string             `json:"candidate_id"`
	AccountID          string             `json:"account_id"`
	Name               string             `json:"name"`
	Country            string             `json:"country,omitempty"`
	PhotoURL           string             `json:"photo_url,omitempty"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	Skills             []string           `json:"skills"`
	MatchScore         float64            `json:"match_score"`
	MatchedSkills      []string           `json:"matched_skills"`
	PerformanceScore   float64            `json:"performance_score"`
	InterviewCount     int                `json:"interview_count"`
	InterviewReadiness InterviewReadiness `json:"interview_readiness"`
	AiInsights         AiInsights         `json:"ai_insights"`
	ScoreBreakdown     ScoreBreakdown     `json:"score_breakdown"`
	FitSummary         string             `json:"fit_summary,omitempty"`
}

// SuggestionEvent 排序完成后发布到消息队列的事件
type SuggestionEvent struct {
	EventID         string    `json:"event_id"`
	OrganizationID  string    `json:"organization_id"`
	JobID           string    `json:"job_id"`
	SuggestionCount int       `json:"suggestion_count"`
	TopScore        float64   `json:"top_score"`
	ElapsedMillis   int64     `json:"elapsed_millis"`
	EngineVersion   string    `json:"engine_version"`
	ComputedAt      time.Time `json:"computed_at"`
}
