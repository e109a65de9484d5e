package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/config"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

func newTestEngine() *Engine {
	cfg := config.MatcherConfig{
		Weights:            config.DefaultWeights(),
		RelevanceThreshold: 30,
		MinSuggestionScore: 20,
		MaxParallelScorers: 4,
		Synonyms:           config.DefaultSynonyms(),
	}
	return NewEngine(cfg)
}

func TestMatchSkillsFullOverlap(t *testing.T) {
	e := newTestEngine()

	result := e.MatchSkills(
		[]string{"React", "Node.js"},
		[]types.SkillEntry{{Name: "react"}, {Name: "nodejs"}, {Name: "css"}},
	)

	assert.Equal(t, float64(100), result.Score, "两项岗位技能全部命中应得满分")
	require.Equal(t, []string{"react", "node.js"}, result.MatchedSkills, "匹配列表应只含岗位侧的规范词")
}

func TestMatchSkillsPartialOverlap(t *testing.T) {
	e := newTestEngine()

	result := e.MatchSkills(
		[]string{"React", "Python", "Docker", "MongoDB"},
		[]types.SkillEntry{{Name: "react"}, {Name: "docker"}},
	)

	assert.Equal(t, float64(50), result.Score, "4项中命中2项应得50分")
	assert.Equal(t, []string{"react", "docker"}, result.MatchedSkills)
}

func TestMatchSkillsEmptyInputs(t *testing.T) {
	e := newTestEngine()

	assert.Zero(t, e.MatchSkills(nil, []types.SkillEntry{{Name: "react"}}).Score, "岗位技能为空应得0分")
	assert.Zero(t, e.MatchSkills([]string{"React"}, nil).Score, "候选人技能为空应得0分")
}

func TestMatchSkillsMonotonicity(t *testing.T) {
	e := newTestEngine()
	jobSkills := []string{"React", "Node.js", "PostgreSQL"}

	base := e.MatchSkills(jobSkills, []types.SkillEntry{{Name: "react"}})
	extended := e.MatchSkills(jobSkills, []types.SkillEntry{{Name: "react"}, {Name: "postgres"}})

	assert.GreaterOrEqual(t, extended.Score, base.Score, "增加命中的技能绝不能降低技能分")
}

func TestMatchedSkillsAreSubsetOfJobSkills(t *testing.T) {
	e := newTestEngine()
	jobSkills := []string{"React", "Vue.js"}

	result := e.MatchSkills(jobSkills, []types.SkillEntry{{Name: "react"}, {Name: "angular"}, {Name: "vue"}})

	jobTokens := e.Normalizer().NormalizeAll(jobSkills)
	tokenSet := make(map[string]bool, len(jobTokens))
	for _, tok := range jobTokens {
		tokenSet[tok] = true
	}
	for _, m := range result.MatchedSkills {
		assert.True(t, tokenSet[m], "匹配词 %q 必须来自岗位技能的归一化集合", m)
	}
}

func TestMatchExpertiseReusesSkillAlgorithm(t *testing.T) {
	e := newTestEngine()

	result := e.MatchExpertise(
		[]string{"Backend", "System Design"},
		[]string{"backend", "databases"},
	)
	assert.Equal(t, float64(50), result.Score)

	assert.Zero(t, e.MatchExpertise(nil, []string{"backend"}).Score, "任一侧为空应得0分")
}
