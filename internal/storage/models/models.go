package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// Account 账号主表，承载候选人的展示信息
type Account struct {
	AccountID      string         `gorm:"type:char(36);primaryKey"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex:idx_accounts_email_unique"`
	Phone          string         `gorm:"type:varchar(50)"`
	Country        string         `gorm:"type:varchar(100)"`
	Bio            string         `gorm:"type:text"`
	ExpertiseJSON  datatypes.JSON `gorm:"type:json"` // 专长标签数组
	PhotoObjectKey string         `gorm:"type:varchar(1024)"` // MinIO中头像对象的key
	CreatedAt      time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt      time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}

// Snapshot 把账号记录转换为评分引擎使用的只读快照
func (a *Account) Snapshot() (*types.AccountSnapshot, error) {
	var expertise []string
	if len(a.ExpertiseJSON) > 0 {
		if err := json.Unmarshal(a.ExpertiseJSON, &expertise); err != nil {
			return nil, fmt.Errorf("解码账号 %s 的专长标签失败: %w", a.AccountID, err)
		}
	}
	return &types.AccountSnapshot{
		AccountID:      a.AccountID,
		Name:           a.Name,
		Country:        a.Country,
		Bio:            a.Bio,
		Expertise:      expertise,
		PhotoObjectKey: a.PhotoObjectKey,
		Email:          a.Email,
		Phone:          a.Phone,
	}, nil
}

// Candidate 候选人主表
type Candidate struct {
	CandidateID      string         `gorm:"type:char(36);primaryKey"`
	AccountID        *string        `gorm:"type:char(36);index:idx_candidates_account_id"`
	SkillsJSON       datatypes.JSON `gorm:"type:json"` // 技能数组，元素为字符串或 {name, level} 对象
	PerformanceScore float64        `gorm:"type:double;default:0"`
	InterviewCount   int            `gorm:"type:int;default:0"`
	IsActive         bool           `gorm:"default:true;index:idx_candidates_is_active"`
	CreatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Account *Account `gorm:"foreignKey:AccountID;references:AccountID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// Snapshot 把候选人记录转换为评分引擎使用的只读快照。
// 技能JSON形态异构（字符串或对象），统一在这里解码。
func (c *Candidate) Snapshot() (*types.CandidateSnapshot, error) {
	if c.Account == nil {
		return nil, fmt.Errorf("候选人 %s 缺少关联账号", c.CandidateID)
	}
	account, err := c.Account.Snapshot()
	if err != nil {
		return nil, err
	}
	skills, err := types.DecodeSkillEntries(c.SkillsJSON)
	if err != nil {
		return nil, fmt.Errorf("候选人 %s 技能列表非法: %w", c.CandidateID, err)
	}
	return &types.CandidateSnapshot{
		CandidateID:      c.CandidateID,
		Account:          account,
		Skills:           skills,
		PerformanceScore: c.PerformanceScore,
		InterviewCount:   c.InterviewCount,
		IsActive:         c.IsActive,
	}, nil
}

// Job 岗位信息表
type Job struct {
	JobID              string         `gorm:"type:char(36);primaryKey"`
	OrganizationID     string         `gorm:"type:char(36);not null;index:idx_jobs_organization_id"`
	Title              string         `gorm:"type:varchar(255);not null"`
	RequiredSkillsJSON datatypes.JSON `gorm:"type:json"` // 按岗位要求排序的技能标签数组
	Location           string         `gorm:"type:varchar(255)"`
	SeniorityLevel     string         `gorm:"type:varchar(100)"`
	Description        string         `gorm:"type:text"`
	FocusAreasJSON     datatypes.JSON `gorm:"type:json"` // 考察方向标签数组
	Status             string         `gorm:"type:varchar(50);default:'OPEN';index:idx_jobs_status"`
	CreatedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Job) TableName() string {
	return "jobs"
}

// Snapshot 把岗位记录转换为评分引擎使用的只读快照
func (j *Job) Snapshot() (*types.JobSnapshot, error) {
	var requiredSkills []string
	if len(j.RequiredSkillsJSON) > 0 {
		if err := json.Unmarshal(j.RequiredSkillsJSON, &requiredSkills); err != nil {
			return nil, fmt.Errorf("解码岗位 %s 的技能要求失败: %w", j.JobID, err)
		}
	}
	var focusAreas []string
	if len(j.FocusAreasJSON) > 0 {
		if err := json.Unmarshal(j.FocusAreasJSON, &focusAreas); err != nil {
			return nil, fmt.Errorf("解码岗位 %s 的考察方向失败: %w", j.JobID, err)
		}
	}
	return &types.JobSnapshot{
		JobID:          j.JobID,
		OrganizationID: j.OrganizationID,
		Title:          j.Title,
		RequiredSkills: requiredSkills,
		Location:       j.Location,
		SeniorityLevel: j.SeniorityLevel,
		Description:    j.Description,
		FocusAreas:     focusAreas,
	}, nil
}

// Interview 模拟面试记录表
type Interview struct {
	InterviewID      string     `gorm:"type:char(36);primaryKey"`
	CandidateID      string     `gorm:"type:char(36);not null;index:idx_interviews_candidate_id"`
	RoleTitle        string     `gorm:"type:varchar(255)"`
	TechStack        string     `gorm:"type:text"` // 逗号分隔的技术栈
	InterviewType    string     `gorm:"type:varchar(100)"`
	Finalized        bool       `gorm:"default:false;index:idx_interviews_finalized"`
	OverallScore     *float64   `gorm:"type:double"` // 未出分时为NULL
	IsJobApplication bool       `gorm:"default:false"`
	ScheduledAt      time.Time  `gorm:"type:datetime(6);not null;index:idx_interviews_scheduled_at"`
	CreatedAt        time.Time  `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time  `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Candidate *Candidate `gorm:"foreignKey:CandidateID;references:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Interview) TableName() string {
	return "interviews"
}

// Snapshot 把面试记录转换为评分引擎使用的只读快照
func (i *Interview) Snapshot() types.InterviewSnapshot {
	return types.InterviewSnapshot{
		InterviewID:      i.InterviewID,
		RoleTitle:        i.RoleTitle,
		TechStack:        i.TechStack,
		Type:             i.InterviewType,
		Finalized:        i.Finalized,
		Score:            i.OverallScore,
		IsJobApplication: i.IsJobApplication,
	}
}

// Report AI生成的表现报告表
type Report struct {
	ReportID      string         `gorm:"type:char(36);primaryKey"`
	CandidateID   string         `gorm:"type:char(36);not null;index:idx_reports_candidate_id"`
	ReportType    string         `gorm:"type:varchar(50);not null;index:idx_reports_report_type"`
	OverallScore  *float64       `gorm:"type:double"` // 无整体评分的报告为NULL
	StrengthsJSON datatypes.JSON `gorm:"type:json"`   // 优势标签数组
	CreatedAt     time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_reports_created_at"`

	Candidate *Candidate `gorm:"foreignKey:CandidateID;references:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Report) TableName() string {
	return "ai_reports"
}

// Snapshot 把报告记录转换为评分引擎使用的只读快照
func (r *Report) Snapshot() (types.ReportSnapshot, error) {
	var strengths []string
	if len(r.StrengthsJSON) > 0 {
		if err := json.Unmarshal(r.StrengthsJSON, &strengths); err != nil {
			return types.ReportSnapshot{}, fmt.Errorf("解码报告 %s 的优势标签失败: %w", r.ReportID, err)
		}
	}
	return types.ReportSnapshot{
		ReportID:  r.ReportID,
		Type:      types.ReportType(r.ReportType),
		Score:     r.OverallScore,
		Strengths: strengths,
		CreatedAt: r.CreatedAt,
	}, nil
}
