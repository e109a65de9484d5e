package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/config"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Enabled:        true,
		MaxSummaries:   2,
		SummaryTimeout: "5s",
	}
}

func testJobSnapshot() *types.JobSnapshot {
	return &types.JobSnapshot{
		JobID:          "job-1",
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go", "PostgreSQL"},
		SeniorityLevel: "Mid-level",
	}
}

func testSuggestions() []types.Suggestion {
	return []types.Suggestion{
		{CandidateID: "c1", Name: "Lina", MatchScore: 88, MatchedSkills: []string{"go", "postgresql"}},
		{CandidateID: "c2", Name: "Omar", MatchScore: 75, MatchedSkills: []string{"go"}},
		{CandidateID: "c3", Name: "Sara", MatchScore: 60, MatchedSkills: []string{"postgresql"}},
	}
}

func TestSummarizeReturnsModelContent(t *testing.T) {
	mock := &MockChatModel{Response: "技能高度匹配，面试表现稳定。"}
	s := NewFitSummarizer(mock, testLLMConfig(), nil)

	suggestion := testSuggestions()[0]
	summary, err := s.Summarize(context.Background(), testJobSnapshot(), &suggestion)
	require.NoError(t, err)
	assert.Equal(t, "技能高度匹配，面试表现稳定。", summary)
	assert.Equal(t, 1, mock.CallCount)
}

func TestSummarizeTruncatesOverlongOutput(t *testing.T) {
	mock := &MockChatModel{Response: strings.Repeat("长", 500)}
	s := NewFitSummarizer(mock, testLLMConfig(), nil)

	suggestion := testSuggestions()[0]
	summary, err := s.Summarize(context.Background(), testJobSnapshot(), &suggestion)
	require.NoError(t, err)
	assert.Len(t, []rune(summary), 200, "超长输出应被截断而不是报错")
}

func TestSummarizeNilInputs(t *testing.T) {
	s := NewFitSummarizer(&MockChatModel{}, testLLMConfig(), nil)

	_, err := s.Summarize(context.Background(), nil, &types.Suggestion{})
	require.Error(t, err)

	s = NewFitSummarizer(nil, testLLMConfig(), nil)
	_, err = s.Summarize(context.Background(), testJobSnapshot(), &types.Suggestion{})
	require.Error(t, err)
}

func TestAnnotateTopRespectsLimit(t *testing.T) {
	mock := &MockChatModel{Response: "匹配良好。"}
	s := NewFitSummarizer(mock, testLLMConfig(), nil)

	suggestions := testSuggestions()
	s.AnnotateTop(context.Background(), testJobSnapshot(), suggestions)

	assert.Equal(t, "匹配良好。", suggestions[0].FitSummary)
	assert.Equal(t, "匹配良好。", suggestions[1].FitSummary)
	assert.Empty(t, suggestions[2].FitSummary, "超出MaxSummaries的候选人不生成摘要")
	assert.Equal(t, 2, mock.CallCount)
}

func TestAnnotateTopDisabled(t *testing.T) {
	mock := &MockChatModel{Response: "不应被调用"}
	cfg := testLLMConfig()
	cfg.Enabled = false
	s := NewFitSummarizer(mock, cfg, nil)

	suggestions := testSuggestions()
	s.AnnotateTop(context.Background(), testJobSnapshot(), suggestions)

	for _, sg := range suggestions {
		assert.Empty(t, sg.FitSummary)
	}
	assert.Zero(t, mock.CallCount)
}

func TestAnnotateTopSkipsFailuresSilently(t *testing.T) {
	mock := &MockChatModel{Err: fmt.Errorf("模型不可用")}
	s := NewFitSummarizer(mock, testLLMConfig(), nil)

	suggestions := testSuggestions()
	s.AnnotateTop(context.Background(), testJobSnapshot(), suggestions)

	for _, sg := range suggestions {
		assert.Empty(t, sg.FitSummary, "摘要失败只跳过，不影响结果结构")
	}
}
