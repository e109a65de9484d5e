package matching

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/logger"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// CandidateRecord 单个候选人参与排序所需的全部输入。
// 面试与报告都必须按时间从新到旧排列。
type CandidateRecord struct {
	Candidate  *types.CandidateSnapshot
	Interviews []types.InterviewSnapshot
	Reports    []types.ReportSnapshot
}

// ScoredCandidate 通过筛选的候选人及其完整评分
type ScoredCandidate struct {
	Candidate *types.CandidateSnapshot
	Result    CompositeResult
}

// candidateOutcome 每个候选人的处理结果: 成功评分或带原因跳过
type candidateOutcome struct {
	scored *ScoredCandidate
	skipID string
	reason string
}

// Rank 对候选人池评分并排序。
// 每个候选人的计算互相独立，按配置的并发度并行执行。
// 单个候选人数据异常时跳过并记录诊断日志，绝不中断整批排序。
// 综合分低于配置阈值的候选人被丢弃；排序使用稳定排序，
// 同分候选人保持输入相对顺序。
func (e *Engine) Rank(ctx context.Context, job *types.JobSnapshot, records []CandidateRecord) ([]ScoredCandidate, error) {
	if job == nil {
		return nil, fmt.Errorf("岗位快照不能为空")
	}
	if len(records) == 0 {
		return []ScoredCandidate{}, nil
	}

	outcomes := make([]candidateOutcome, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxParallelScorers)

	for i := range records {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			record := records[i]
			if record.Candidate == nil {
				outcomes[i] = candidateOutcome{skipID: "unknown", reason: "候选人快照为空"}
				return nil
			}
			if record.Candidate.Account == nil {
				outcomes[i] = candidateOutcome{
					skipID: record.Candidate.CandidateID,
					reason: "候选人缺少关联账号",
				}
				return nil
			}

			result := e.Score(job, record.Candidate, record.Interviews, record.Reports)
			outcomes[i] = candidateOutcome{
				scored: &ScoredCandidate{Candidate: record.Candidate, Result: result},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("候选人并行评分中断: %w", err)
	}

	scored := make([]ScoredCandidate, 0, len(records))
	for _, outcome := range outcomes {
		if outcome.scored == nil {
			logger.Ctx(ctx).Warn().
				Str("job_id", job.JobID).
				Str("candidate_id", outcome.skipID).
				Str("reason", outcome.reason).
				Msg("候选人数据异常，跳过评分")
			continue
		}
		if outcome.scored.Result.Total < e.cfg.MinSuggestionScore {
			continue
		}
		scored = append(scored, *outcome.scored)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Result.Total > scored[j].Result.Total
	})

	return scored, nil
}
