package llm

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/config"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// FitSummarizer 为排序靠前的候选人生成一句话匹配摘要。
// 摘要是纯展示性内容，生成失败只影响该字段，不影响排序结果本身。
type FitSummarizer struct {
	llmModel       model.ToolCallingChatModel
	cfg            config.LLMConfig
	promptTemplate string
	logger         *log.Logger
}

// FitSummarizerOption 摘要生成器的配置选项
type FitSummarizerOption func(*FitSummarizer)

// WithPromptTemplate 设置自定义提示词模板
func WithPromptTemplate(template string) FitSummarizerOption {
	return func(s *FitSummarizer) {
		s.promptTemplate = template
	}
}

// NewFitSummarizer 创建摘要生成器
func NewFitSummarizer(llmModel model.ToolCallingChatModel, cfg config.LLMConfig, logger *log.Logger, options ...FitSummarizerOption) *FitSummarizer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &FitSummarizer{
		llmModel: llmModel,
		cfg:      cfg,
		logger:   logger,
	}

	if cfg.PromptTemplate != "" {
		s.promptTemplate = cfg.PromptTemplate
	} else {
		s.generatePromptTemplate()
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

func (s *FitSummarizer) generatePromptTemplate() {
	s.promptTemplate = `你是一位资深的技术招聘顾问。下面给出一个岗位和一位候选人的匹配评分明细，请用一句话（不超过60个字）向招聘方说明这位候选人为什么值得关注，突出其与岗位最相关的技能和表现。

**输出要求：**
- 只输出摘要本身，禁止输出任何解释、标点装饰或Markdown标记。
- 不要复述分数数字，把分数转述为定性的描述。
- 语气客观专业，不夸大。

【岗位】:
标题: %s
技能要求: %s
级别: %s

【候选人】:
姓名: %s
命中技能: %s
综合匹配分: %.0f
面试就绪度: %.0f (可用面试%d场)
AI洞察分: %.0f

请输出摘要。`
}

// Summarize 为单个候选人生成匹配摘要
func (s *FitSummarizer) Summarize(ctx context.Context, job *types.JobSnapshot, suggestion *types.Suggestion) (string, error) {
	if s.llmModel == nil {
		return "", fmt.Errorf("FitSummarizer: llmModel is not initialized")
	}
	if job == nil || suggestion == nil {
		return "", fmt.Errorf("FitSummarizer: job and suggestion must not be nil")
	}

	userMsgContent := fmt.Sprintf(s.promptTemplate,
		job.Title,
		strings.Join(job.RequiredSkills, ", "),
		job.SeniorityLevel,
		suggestion.Name,
		strings.Join(suggestion.MatchedSkills, ", "),
		suggestion.MatchScore,
		suggestion.InterviewReadiness.ReadinessScore,
		suggestion.InterviewReadiness.InterviewCount,
		suggestion.AiInsights.AiInsightScore,
	)

	systemMsg := einoschema.SystemMessage("你是一位专注于人岗匹配分析的AI招聘助手，擅长把评分明细提炼成简短有力的推荐语。")
	userMsg := einoschema.UserMessage(userMsgContent)

	response, err := s.llmModel.Generate(ctx, []*einoschema.Message{systemMsg, userMsg})
	if err != nil {
		s.logger.Printf("[FitSummarizer] LLM call error: %v", err)
		return "", fmt.Errorf("FitSummarizer: LLM call failed: %w", err)
	}
	if response == nil || response.Content == "" {
		return "", fmt.Errorf("FitSummarizer: LLM returned empty response")
	}

	summary := strings.TrimSpace(strings.TrimPrefix(response.Content, "\uFEFF"))
	// 模型偶尔会无视长度约束，超长时截断而不是报错
	const maxSummaryRunes = 200
	if runes := []rune(summary); len(runes) > maxSummaryRunes {
		summary = string(runes[:maxSummaryRunes])
	}
	return summary, nil
}

// AnnotateTop 为排序结果中靠前的候选人就地填充FitSummary字段。
// 每条摘要有独立超时；单条失败只记日志并跳过，绝不让摘要拖垮整个请求。
func (s *FitSummarizer) AnnotateTop(ctx context.Context, job *types.JobSnapshot, suggestions []types.Suggestion) {
	if !s.cfg.Enabled || s.llmModel == nil || len(suggestions) == 0 {
		return
	}

	limit := s.cfg.MaxSummaries
	if limit <= 0 || limit > len(suggestions) {
		limit = len(suggestions)
	}

	timeout := 30 * time.Second
	if d, err := time.ParseDuration(s.cfg.SummaryTimeout); err == nil && d > 0 {
		timeout = d
	}

	for i := 0; i < limit; i++ {
		summaryCtx, cancel := context.WithTimeout(ctx, timeout)
		summary, err := s.Summarize(summaryCtx, job, &suggestions[i])
		cancel()
		if err != nil {
			s.logger.Printf("[FitSummarizer] 候选人 %s 的摘要生成失败: %v", suggestions[i].CandidateID, err)
			continue
		}
		suggestions[i].FitSummary = summary
	}
}
