package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

func candidateWithSkills(id string, skills ...string) CandidateRecord {
	entries := make([]types.SkillEntry, 0, len(skills))
	for _, s := range skills {
		entries = append(entries, types.SkillEntry{Name: s})
	}
	return CandidateRecord{
		Candidate: &types.CandidateSnapshot{
			CandidateID: id,
			Account:     &types.AccountSnapshot{AccountID: "acc-" + id, Name: id},
			Skills:      entries,
		},
	}
}

func TestRankNilJobFails(t *testing.T) {
	e := newTestEngine()
	_, err := e.Rank(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestRankEmptyPool(t *testing.T) {
	e := newTestEngine()
	scored, err := e.Rank(context.Background(), testJob(), nil)
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestRankSortsDescending(t *testing.T) {
	e := newTestEngine()
	job := testJob() // 需要 go/postgresql/docker

	records := []CandidateRecord{
		candidateWithSkills("weak", "golang"),
		candidateWithSkills("strong", "golang", "postgres", "docker"),
		candidateWithSkills("medium", "golang", "docker"),
	}

	scored, err := e.Rank(context.Background(), job, records)
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, "strong", scored[0].Candidate.CandidateID)
	assert.Equal(t, "medium", scored[1].Candidate.CandidateID)
	assert.Equal(t, "weak", scored[2].Candidate.CandidateID)

	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Result.Total, scored[i].Result.Total,
			"结果必须按综合分非递增排列")
	}
}

func TestRankFiltersBelowMinimumScore(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	records := []CandidateRecord{
		candidateWithSkills("relevant", "golang", "postgres", "docker"),
		candidateWithSkills("irrelevant", "photoshop"),
	}

	scored, err := e.Rank(context.Background(), job, records)
	require.NoError(t, err)

	for _, s := range scored {
		assert.NotEqual(t, "irrelevant", s.Candidate.CandidateID, "低于阈值的候选人不得出现在结果中")
		assert.GreaterOrEqual(t, s.Result.Total, e.cfg.MinSuggestionScore)
	}
}

func TestRankSkipsBrokenRecordsSilently(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	records := []CandidateRecord{
		{Candidate: nil},
		{Candidate: &types.CandidateSnapshot{CandidateID: "orphan"}}, // 无账号
		candidateWithSkills("healthy", "golang", "postgres", "docker"),
	}

	scored, err := e.Rank(context.Background(), job, records)
	require.NoError(t, err, "单条坏记录绝不能中断整批排序")
	require.Len(t, scored, 1)
	assert.Equal(t, "healthy", scored[0].Candidate.CandidateID)
}

func TestRankStableOrderOnTies(t *testing.T) {
	e := newTestEngine()
	job := testJob()

	// 完全相同的技能组合必然同分
	records := []CandidateRecord{
		candidateWithSkills("first", "golang", "docker"),
		candidateWithSkills("second", "golang", "docker"),
		candidateWithSkills("third", "golang", "docker"),
	}

	scored, err := e.Rank(context.Background(), job, records)
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, "first", scored[0].Candidate.CandidateID)
	assert.Equal(t, "second", scored[1].Candidate.CandidateID)
	assert.Equal(t, "third", scored[2].Candidate.CandidateID)
}
