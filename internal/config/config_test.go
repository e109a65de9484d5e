package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempConfig 辅助函数：把YAML内容写入临时配置文件并返回路径
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err, "无法写入临时配置文件")
	return configPath
}

// TestLoadConfigWithMatcherSection 验证匹配引擎配置能被完整加载
func TestLoadConfigWithMatcherSection(t *testing.T) {
	yamlContent := `
server:
  address: ":9090"
matcher:
  relevance_threshold: 40
  min_suggestion_score: 25
  weights:
    skills: 0.65
    interview_readiness: 0.15
    ai_insights: 0.10
    experience: 0.05
    location: 0.03
    expertise_overlap: 0.01
    bio_similarity: 0.01
  synonyms:
    node.js: ["nodejs", "node"]
`
	configPath := writeTempConfig(t, yamlContent)

	config, err := LoadConfig(configPath)
	require.NoError(t, err, "加载合法配置不应返回错误")
	require.NotNil(t, config, "配置对象不应为 nil")

	assert.Equal(t, ":9090", config.Server.Address)
	assert.Equal(t, 40.0, config.Matcher.RelevanceThreshold)
	assert.Equal(t, 25.0, config.Matcher.MinSuggestionScore)
	assert.Equal(t, []string{"nodejs", "node"}, config.Matcher.Synonyms["node.js"])
	// 未显式提供的字段应被默认值填充
	assert.Equal(t, 8, config.Matcher.MaxParallelScorers, "并行度应使用默认值")
	assert.Equal(t, 30, config.Matcher.ResultCacheTTLMinutes, "缓存TTL应使用默认值")
}

// TestLoadConfigWeightsMustSumToOne 验证权重之和不为1.0时配置被拒绝
func TestLoadConfigWeightsMustSumToOne(t *testing.T) {
	yamlContent := `
matcher:
  weights:
    skills: 0.80
    interview_readiness: 0.15
    ai_insights: 0.10
    experience: 0.05
    location: 0.03
    expertise_overlap: 0.01
    bio_similarity: 0.01
`
	configPath := writeTempConfig(t, yamlContent)

	config, err := LoadConfig(configPath)
	require.Error(t, err, "权重之和为1.15的配置应被拒绝")
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "权重之和")
}

// TestLoadConfigAppliesDefaultWeights 验证未配置权重时使用默认权重表
func TestLoadConfigAppliesDefaultWeights(t *testing.T) {
	configPath := writeTempConfig(t, `
server:
  address: ":8080"
`)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultWeights(), config.Matcher.Weights)
	assert.InDelta(t, 1.0, config.Matcher.Weights.Sum(), 1e-9, "默认权重之和必须为1.0")
	assert.Equal(t, 30.0, config.Matcher.RelevanceThreshold)
	assert.Equal(t, 20.0, config.Matcher.MinSuggestionScore)
	assert.NotEmpty(t, config.Matcher.Synonyms, "应填充默认同义词表")
}

// TestLoadConfigRejectsEmptySynonymList 验证空同义词列表会被校验拦截
func TestLoadConfigRejectsEmptySynonymList(t *testing.T) {
	configPath := writeTempConfig(t, `
matcher:
  synonyms:
    react: []
`)

	_, err := LoadConfig(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "同义词")
}

// TestSortedCanonicalSkills 验证规范技能词按字典序返回，保证归一化顺序确定
func TestSortedCanonicalSkills(t *testing.T) {
	m := MatcherConfig{Synonyms: map[string][]string{
		"typescript": {"ts"},
		"go":         {"golang"},
		"node.js":    {"node"},
	}}

	assert.Equal(t, []string{"go", "node.js", "typescript"}, m.SortedCanonicalSkills())
}
