package handler

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	gofrsuuid "github.com/gofrs/uuid/v5"
	googleuuid "github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/config"
	appconstants "github.com/yamamahashayer/Minterviewer-sub004/internal/constants"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/llm"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/matching"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/storage"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/storage/models"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// SuggestionHandler 负责处理岗位候选人推荐请求。
type SuggestionHandler struct {
	cfg        *config.Config
	storage    *storage.Storage
	engine     *matching.Engine
	summarizer *llm.FitSummarizer
	logger     *log.Logger
}

// NewSuggestionHandler 创建一个新的 SuggestionHandler 实例。
func NewSuggestionHandler(cfg *config.Config, storage *storage.Storage, engine *matching.Engine, summarizer *llm.FitSummarizer) *SuggestionHandler {
	return &SuggestionHandler{
		cfg:        cfg,
		storage:    storage,
		engine:     engine,
		summarizer: summarizer,
		logger:     log.New(os.Stdout, "[SuggestionHandler] ", log.LstdFlags|log.Lshortfile),
	}
}

// HandleGetSuggestions 处理查询岗位推荐候选人的请求。
// GET /api/v1/organizations/:org_id/jobs/:job_id/suggestions
func (h *SuggestionHandler) HandleGetSuggestions(ctx context.Context, c *app.RequestContext) {
	// 1. 获取请求参数
	orgID := c.Param("org_id")
	jobID := c.Param("job_id")
	if orgID == "" || jobID == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "org_id 和 job_id 不能为空"})
		return
	}

	limit := appconstants.DefaultSuggestionLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > appconstants.MaxSuggestionLimit {
		limit = appconstants.MaxSuggestionLimit
	}
	wantSummaries := c.Query("summary") == "true"

	// 请求ID用于日志关联
	requestID := ""
	if rid, err := gofrsuuid.NewV7(); err == nil {
		requestID = rid.String()
	}

	h.logger.Printf("开始处理推荐请求 [%s]: OrgID=%s, JobID=%s, Limit=%d", requestID, orgID, jobID, limit)

	// 2. 检查结果缓存。命中时仍需岗位快照组装响应，快照缓存通常也会命中
	if h.storage.Redis != nil {
		cached, err := h.storage.Redis.GetCachedSuggestions(ctx, orgID, jobID)
		if err == nil {
			job, jobErr := h.loadJob(ctx, requestID, orgID, jobID)
			if jobErr != nil {
				if errors.Is(jobErr, gorm.ErrRecordNotFound) {
					c.JSON(consts.StatusNotFound, map[string]string{"error": "岗位不存在"})
					return
				}
				h.logger.Printf("查询岗位失败 [%s]: %v", requestID, jobErr)
				c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询岗位失败"})
				return
			}
			h.logger.Printf("缓存命中 [%s]: JobID=%s, %d 条建议", requestID, jobID, len(cached))
			h.respondWithSuggestions(c, job, cached, limit, true)
			return
		}
		if !errors.Is(err, storage.ErrNotFound) {
			// 缓存读取出错不阻塞主流程
			h.logger.Printf("读取结果缓存失败 [%s]: %v", requestID, err)
		}
	}

	// 3. 缓存未命中，尝试获取计算锁，避免并发重算同一岗位
	if h.storage.Redis != nil {
		lockTTL := time.Duration(h.cfg.Matcher.ComputeLockTTLMinutes) * time.Minute
		lockValue, err := h.storage.Redis.AcquireComputeLock(ctx, orgID, jobID, lockTTL)
		if err != nil {
			h.logger.Printf("获取计算锁失败 [%s]: %v，继续执行可能导致重复计算", requestID, err)
		} else if lockValue == "" {
			h.logger.Printf("排序已在计算中 [%s]: JobID=%s，返回等待消息", requestID, jobID)
			c.JSON(consts.StatusAccepted, map[string]interface{}{
				"message":     "推荐结果正在计算中，请稍后重试",
				"status":      "processing",
				"job_id":      jobID,
				"retry_after": 2,
			})
			return
		} else {
			defer func() {
				released, err := h.storage.Redis.ReleaseComputeLock(ctx, orgID, jobID, lockValue)
				if err != nil || !released {
					h.logger.Printf("释放计算锁失败 [%s]: JobID=%s: %v, released: %v", requestID, jobID, err, released)
				}
			}()
		}
	}

	started := time.Now()

	// 4. 加载岗位，不存在或不属于该组织返回404
	job, err := h.loadJob(ctx, requestID, orgID, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(consts.StatusNotFound, map[string]string{"error": "岗位不存在"})
			return
		}
		h.logger.Printf("查询岗位失败 [%s]: %v", requestID, err)
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询岗位失败"})
		return
	}

	// 5. 执行完整的取数、评分、排序流程
	suggestions, err := h.computeSuggestions(ctx, requestID, job)
	if err != nil {
		h.logger.Printf("排序流程失败 [%s]: JobID=%s: %v", requestID, jobID, err)
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "计算推荐失败"})
		return
	}

	// 6. 可选的LLM匹配摘要
	if wantSummaries && h.summarizer != nil {
		h.summarizer.AnnotateTop(ctx, job, suggestions)
	}

	// 7. 写入结果缓存，失败只记日志
	if h.storage.Redis != nil {
		ttl := time.Duration(h.cfg.Matcher.ResultCacheTTLMinutes) * time.Minute
		if err := h.storage.Redis.CacheSuggestions(ctx, orgID, jobID, suggestions, ttl); err != nil {
			h.logger.Printf("缓存排序结果失败 [%s]: JobID=%s: %v", requestID, jobID, err)
		}
	}

	// 8. 发布排序完成事件，失败只记日志
	h.publishEvent(ctx, requestID, job, suggestions, time.Since(started))

	h.respondWithSuggestions(c, job, suggestions, limit, false)
}

// loadJob 加载岗位快照，优先走Redis快照缓存。
// 缓存按jobID单键存储，命中后仍校验组织归属，避免跨组织读取。
func (h *SuggestionHandler) loadJob(ctx context.Context, requestID, orgID, jobID string) (*types.JobSnapshot, error) {
	if h.storage.Redis != nil {
		cached, err := h.storage.Redis.GetCachedJobSnapshot(ctx, jobID)
		if err == nil {
			if cached.OrganizationID != orgID {
				return nil, gorm.ErrRecordNotFound
			}
			return cached, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			h.logger.Printf("读取岗位快照缓存失败 [%s]: %v", requestID, err)
		}
	}

	jobRecord, err := h.storage.MySQL.GetJobByOrgAndID(ctx, orgID, jobID)
	if err != nil {
		return nil, err
	}
	job, err := jobRecord.Snapshot()
	if err != nil {
		return nil, err
	}

	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheJobSnapshot(ctx, job, appconstants.JobSnapshotCacheDuration); err != nil {
			h.logger.Printf("缓存岗位快照失败 [%s]: %v", requestID, err)
		}
	}
	return job, nil
}

// computeSuggestions 取数并执行评分排序，组装响应用的建议列表
func (h *SuggestionHandler) computeSuggestions(ctx context.Context, requestID string, job *types.JobSnapshot) ([]types.Suggestion, error) {
	candidates, err := h.storage.MySQL.ListActiveCandidates(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []types.Suggestion{}, nil
	}

	candidateIDs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		candidateIDs = append(candidateIDs, c.CandidateID)
	}

	interviewsByCandidate, err := h.storage.MySQL.ListInterviewsByCandidateIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	reportsByCandidate, err := h.storage.MySQL.ListReportsByCandidateIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	// 构建评分输入，单个候选人数据异常时跳过并记录
	records := make([]matching.CandidateRecord, 0, len(candidates))
	for i := range candidates {
		record, err := h.buildCandidateRecord(&candidates[i], interviewsByCandidate, reportsByCandidate)
		if err != nil {
			h.logger.Printf("候选人数据异常，跳过 [%s]: CandidateID=%s: %v", requestID, candidates[i].CandidateID, err)
			continue
		}
		records = append(records, record)
	}

	scored, err := h.engine.Rank(ctx, job, records)
	if err != nil {
		return nil, err
	}

	suggestions := make([]types.Suggestion, 0, len(scored))
	for _, s := range scored {
		suggestions = append(suggestions, h.buildSuggestion(ctx, s))
	}
	return suggestions, nil
}

// buildCandidateRecord 把数据库记录转换为评分输入
func (h *SuggestionHandler) buildCandidateRecord(candidate *models.Candidate,
	interviewsByCandidate map[string][]models.Interview,
	reportsByCandidate map[string][]models.Report) (matching.CandidateRecord, error) {

	snapshot, err := candidate.Snapshot()
	if err != nil {
		return matching.CandidateRecord{}, err
	}

	rawInterviews := interviewsByCandidate[candidate.CandidateID]
	interviews := make([]types.InterviewSnapshot, 0, len(rawInterviews))
	for _, iv := range rawInterviews {
		interviews = append(interviews, iv.Snapshot())
	}

	rawReports := reportsByCandidate[candidate.CandidateID]
	reports := make([]types.ReportSnapshot, 0, len(rawReports))
	for _, r := range rawReports {
		reportSnapshot, err := r.Snapshot()
		if err != nil {
			// 单份报告损坏不拖累整个候选人
			h.logger.Printf("报告数据异常，忽略: ReportID=%s: %v", r.ReportID, err)
			continue
		}
		reports = append(reports, reportSnapshot)
	}

	return matching.CandidateRecord{
		Candidate:  snapshot,
		Interviews: interviews,
		Reports:    reports,
	}, nil
}

// buildSuggestion 把评分结果组装为响应条目
func (h *SuggestionHandler) buildSuggestion(ctx context.Context, scored matching.ScoredCandidate) types.Suggestion {
	candidate := scored.Candidate
	account := candidate.Account

	photoURL := ""
	if h.storage.MinIO != nil && account.PhotoObjectKey != "" {
		url, err := h.storage.MinIO.PresignPhotoURL(ctx, account.PhotoObjectKey)
		if err != nil {
			h.logger.Printf("生成头像预签名URL失败: CandidateID=%s: %v", candidate.CandidateID, err)
		} else {
			photoURL = url
		}
	}

	return types.Suggestion{
		CandidateID:        candidate.CandidateID,
		AccountID:          account.AccountID,
		Name:               account.Name,
		Country:            account.Country,
		PhotoURL:           photoURL,
		Email:              account.Email,
		Phone:              account.Phone,
		Skills:             h.engine.Normalizer().NormalizeEntries(candidate.Skills),
		MatchScore:         scored.Result.Total,
		MatchedSkills:      scored.Result.MatchedSkills,
		PerformanceScore:   candidate.PerformanceScore,
		InterviewCount:     candidate.InterviewCount,
		InterviewReadiness: scored.Result.Readiness,
		AiInsights:         scored.Result.Insights,
		ScoreBreakdown:     scored.Result.Breakdown,
	}
}

// publishEvent 发布排序完成事件到消息队列
func (h *SuggestionHandler) publishEvent(ctx context.Context, requestID string, job *types.JobSnapshot, suggestions []types.Suggestion, elapsed time.Duration) {
	if h.storage.RabbitMQ == nil {
		return
	}

	topScore := 0.0
	if len(suggestions) > 0 {
		topScore = suggestions[0].MatchScore
	}
	event := &types.SuggestionEvent{
		EventID:         googleuuid.NewString(),
		OrganizationID:  job.OrganizationID,
		JobID:           job.JobID,
		SuggestionCount: len(suggestions),
		TopScore:        topScore,
		ElapsedMillis:   elapsed.Milliseconds(),
		EngineVersion:   appconstants.DefaultEngineVersion,
		ComputedAt:      time.Now(),
	}
	if err := h.storage.RabbitMQ.PublishSuggestionEvent(ctx, event); err != nil {
		h.logger.Printf("发布排序完成事件失败 [%s]: JobID=%s: %v", requestID, job.JobID, err)
	}
}

// respondWithSuggestions 统一的成功响应，按limit截取
func (h *SuggestionHandler) respondWithSuggestions(c *app.RequestContext, job *types.JobSnapshot, suggestions []types.Suggestion, limit int, fromCache bool) {
	page := suggestions
	if len(page) > limit {
		page = page[:limit]
	}

	message := "推荐计算成功"
	if fromCache {
		message = "推荐计算成功 (来自缓存)"
	}

	c.JSON(consts.StatusOK, map[string]interface{}{
		"message":         message,
		"organization_id": job.OrganizationID,
		"job": map[string]interface{}{
			"job_id":          job.JobID,
			"title":           job.Title,
			"required_skills": job.RequiredSkills,
		},
		"total_count": len(suggestions),
		"suggestions": page,
	})
}
