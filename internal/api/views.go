package api

import (
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/risk"
)

// ContractView 合同响应视图
// @Description 合同详情,含展开后的风险触发器列表
type ContractView struct {
	ID                    string         `json:"id"`
	Title                 string         `json:"title"`
	SubmitterID           string         `json:"submitter_id"`
	ContractType          string         `json:"contract_type"`
	Entity                string         `json:"entity"`
	Department            string         `json:"department"`
	Scope                 string         `json:"scope"`
	Background            string         `json:"background"`
	Amount                float64        `json:"amount"`
	OriginalAmount        float64        `json:"original_amount"`
	OriginalCurrency      string         `json:"original_currency"`
	ExchangeRate          float64        `json:"exchange_rate"`
	StartDate             string         `json:"start_date"`
	EndDate               string         `json:"end_date"`
	IsStandardTerms       bool           `json:"is_standard_terms"`
	LiabilityCapPercent   float64        `json:"liability_cap_percent"`
	IsSubcontracting      bool           `json:"is_subcontracting"`
	SubcontractingPercent float64        `json:"subcontracting_percent"`
	Triggers              []risk.Trigger `json:"triggers"`
	IsHighRisk            bool           `json:"is_high_risk"`
	Status                string         `json:"status"`
	LegalApproved         bool           `json:"legal_approved"`
	HasUnreadComments     bool           `json:"has_unread_comments"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// NewContractView 将合同模型转为响应视图
func NewContractView(c *model.ContractModel) (*ContractView, error) {
	triggers, err := c.GetTriggers()
	if err != nil {
		return nil, err
	}
	return &ContractView{
		ID:                    c.ID,
		Title:                 c.Title,
		SubmitterID:           c.SubmitterID,
		ContractType:          c.ContractType,
		Entity:                c.Entity,
		Department:            c.Department,
		Scope:                 c.Scope,
		Background:            c.Background,
		Amount:                c.Amount,
		OriginalAmount:        c.OriginalAmount,
		OriginalCurrency:      c.OriginalCurrency,
		ExchangeRate:          c.ExchangeRate,
		StartDate:             c.StartDate.Format("2006-01-02"),
		EndDate:               c.EndDate.Format("2006-01-02"),
		IsStandardTerms:       c.IsStandardTerms,
		LiabilityCapPercent:   c.LiabilityCapPercent,
		IsSubcontracting:      c.IsSubcontracting,
		SubcontractingPercent: c.SubcontractingPercent,
		Triggers:              triggers,
		IsHighRisk:            c.IsHighRisk,
		Status:                c.Status,
		LegalApproved:         c.LegalApproved,
		HasUnreadComments:     c.HasUnreadComments,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}, nil
}

// NewContractViews 批量转换合同视图
func NewContractViews(contracts []*model.ContractModel) ([]*ContractView, error) {
	views := make([]*ContractView, 0, len(contracts))
	for _, c := range contracts {
		v, err := NewContractView(c)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ReviewView 评审记录视图
type ReviewView struct {
	ID           string    `json:"id"`
	ContractID   string    `json:"contract_id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name"`
	Role         string    `json:"role"`
	Decision     string    `json:"decision"`
	Comment      string    `json:"comment"`
	IsAdHoc      bool      `json:"is_ad_hoc"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewReviewViews 批量转换评审记录视图
func NewReviewViews(reviews []*model.ReviewModel) []*ReviewView {
	views := make([]*ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, &ReviewView{
			ID:           r.ID,
			ContractID:   r.ContractID,
			ReviewerID:   r.ReviewerID,
			ReviewerName: r.ReviewerName,
			Role:         r.Role,
			Decision:     r.Decision,
			Comment:      r.Comment,
			IsAdHoc:      r.IsAdHoc,
			CreatedAt:    r.CreatedAt,
		})
	}
	return views
}

// ReviewerView 临时评审人视图
type ReviewerView struct {
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	Role     string    `json:"role"`
	AddedBy  string    `json:"added_by"`
	AddedAt  time.Time `json:"added_at"`
}

// NewReviewerViews 批量转换临时评审人视图
func NewReviewerViews(reviewers []*model.ReviewerModel) []*ReviewerView {
	views := make([]*ReviewerView, 0, len(reviewers))
	for _, r := range reviewers {
		views = append(views, &ReviewerView{
			UserID:   r.UserID,
			UserName: r.UserName,
			Role:     r.Role,
			AddedBy:  r.AddedBy,
			AddedAt:  r.AddedAt,
		})
	}
	return views
}

// AuditEntryView 审计条目视图
type AuditEntryView struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAuditEntryViews 批量转换审计条目视图
func NewAuditEntryViews(entries []*model.AuditEntryModel) []*AuditEntryView {
	views := make([]*AuditEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, &AuditEntryView{
			ID:         e.ID,
			ContractID: e.ContractID,
			UserID:     e.UserID,
			UserName:   e.UserName,
			Action:     e.Action,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt,
		})
	}
	return views
}

// CommentView 评论视图
type CommentView struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Role       string    `json:"role"`
	Text       string    `json:"text"`
	Likes      []string  `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCommentView 将评论模型转为视图
func NewCommentView(c *model.CommentModel) (*CommentView, error) {
	likes, err := c.GetLikes()
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []string{}
	}
	return &CommentView{
		ID:         c.ID,
		ContractID: c.ContractID,
		UserID:     c.UserID,
		UserName:   c.UserName,
		Role:       c.Role,
		Text:       c.Text,
		Likes:      likes,
		CreatedAt:  c.CreatedAt,
	}, nil
}

// NewCommentViews 批量转换评论视图
func NewCommentViews(comments []*model.CommentModel) ([]*CommentView, error) {
	views := make([]*CommentView, 0, len(comments))
	for _, c := range comments {
		v, err := NewCommentView(c)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// DocumentView 附件元数据视图
type DocumentView struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewDocumentViews 批量转换附件元数据视图
func NewDocumentViews(docs []*model.DocumentModel) []*DocumentView {
	views := make([]*DocumentView, 0, len(docs))
	for _, d := range docs {
		views = append(views, &DocumentView{
			ID:         d.ID,
			ContractID: d.ContractID,
			Name:       d.Name,
			Size:       d.Size,
			UploadedBy: d.UploadedBy,
			UploadedAt: d.UploadedAt,
		})
	}
	return views
}
