package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/metrics"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"gorm.io/gorm"
)

// WorkflowService 审批工作流服务接口
// 所有变更操作在合同级互斥锁内执行,授权守卫在持锁后基于最新状态复查
type WorkflowService interface {
	Submit(ctx context.Context, actor workflow.Actor, contractID string) (*model.ContractModel, error)
	Decide(ctx context.Context, actor workflow.Actor, contractID string, decision string, comment string) (*model.ContractModel, error)
	AddReviewer(ctx context.Context, actor workflow.Actor, contractID string, userID string) error
	Reviews(contractID string) ([]*model.ReviewModel, error)
	Reviewers(contractID string) ([]*model.ReviewerModel, error)
}

// workflowService 审批工作流服务实现
type workflowService struct {
	db        *gorm.DB
	contracts repository.ContractRepository
	reviews   repository.ReviewRepository
	reviewers repository.ReviewerRepository
	dir       directory.UserDirectory
	auditSvc  AuditService
	notifySvc NotificationService
	locker    *ContractLocker
	idgen     utils.IDGenerator
}

// NewWorkflowService 创建审批工作流服务
func NewWorkflowService(
	db *gorm.DB,
	contracts repository.ContractRepository,
	reviews repository.ReviewRepository,
	reviewers repository.ReviewerRepository,
	dir directory.UserDirectory,
	auditSvc AuditService,
	notifySvc NotificationService,
	locker *ContractLocker,
	idgen utils.IDGenerator,
) WorkflowService {
	return &workflowService{
		db:        db,
		contracts: contracts,
		reviews:   reviews,
		reviewers: reviewers,
		dir:       dir,
		auditSvc:  auditSvc,
		notifySvc: notifySvc,
		locker:    locker,
		idgen:     idgen,
	}
}

// Submit 提交合同进入审批流
// 仅提交人可提交,且合同须处于 draft 或 changes_requested 状态。
// 重新提交时已有的评审记录与法务批准标记保持不变
func (s *workflowService) Submit(ctx context.Context, actor workflow.Actor, contractID string) (*model.ContractModel, error) {
	unlock := s.locker.Lock(contractID)
	defer unlock()

	c, err := s.load(contractID)
	if err != nil {
		return nil, err
	}

	if c.SubmitterID != actor.ID {
		return nil, workflow.NewAuthorizationError("submit", "only the submitter can submit a contract")
	}
	if !workflow.CanSubmit(workflow.Status(c.Status)) {
		return nil, workflow.NewAuthorizationError("submit", "contract cannot be submitted while "+c.Status)
	}

	now := time.Now()
	c.Status = string(workflow.StatusSubmitted)
	c.UpdatedAt = now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		details, _ := json.Marshal(map[string]interface{}{
			"title":        c.Title,
			"is_high_risk": c.IsHighRisk,
		})
		if _, err := s.auditSvc.Record(tx, c.ID, actor, model.ActionSubmittedContract, string(details), now); err != nil {
			return err
		}
		subject := fmt.Sprintf("Contract submitted for review: %s", c.Title)
		body := fmt.Sprintf("%s submitted contract %q for corporate review.", actor.Name, c.Title)
		return s.notifySvc.Dispatch(tx, c, actor, workflow.NotifyReviewTeam, subject, body, now)
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Decide 记录一次审批决定
// 主审批链按迁移表驱动状态;临时评审人的决定只入评审历史,
// 不改变合同状态也不触发通知。守卫不通过时不产生任何副作用
func (s *workflowService) Decide(ctx context.Context, actor workflow.Actor, contractID string, decision string, comment string) (*model.ContractModel, error) {
	unlock := s.locker.Lock(contractID)
	defer unlock()

	c, err := s.load(contractID)
	if err != nil {
		return nil, err
	}

	d, err := workflow.ParseDecision(decision)
	if err != nil {
		return nil, err
	}
	if utils.IsBlank(comment) {
		return nil, workflow.NewValidationError("comment", "a decision requires a comment")
	}

	status := workflow.Status(c.Status)

	// 主链优先: 法务或 CEO 在对应状态下的决定驱动状态迁移
	tr, mainErr := workflow.Next(status, actor.Role, d)
	if mainErr == nil {
		return s.decideMain(c, actor, d, comment, tr)
	}

	// 不在主链上时尝试临时评审路径
	isReviewer, err := s.reviewers.Exists(c.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	hasReviewed, err := s.reviews.HasReviewed(c.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	adHoc := workflow.AdHocContext{Status: status, IsReviewer: isReviewer, HasReviewed: hasReviewed}
	if !workflow.CanApprove(status, actor.Role, adHoc) {
		return nil, mainErr
	}

	return s.decideAdHoc(c, actor, d, comment)
}

// decideMain 执行主审批链决定: 评审记录、审计、状态迁移与通知同事务提交
func (s *workflowService) decideMain(c *model.ContractModel, actor workflow.Actor, d workflow.Decision, comment string, tr workflow.Transition) (*model.ContractModel, error) {
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		review := &model.ReviewModel{
			ID:           s.idgen.NewID(),
			ContractID:   c.ID,
			ReviewerID:   actor.ID,
			ReviewerName: actor.Name,
			Role:         string(actor.Role),
			Decision:     string(d),
			Comment:      comment,
			IsAdHoc:      false,
			CreatedAt:    now,
		}
		if err := review.Validate(); err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		c.Status = string(tr.To)
		if tr.SetLegalApproval {
			c.LegalApproved = true
		}
		c.UpdatedAt = now
		if err := tx.Save(c).Error; err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]string{
			"decision": string(d),
			"comment":  comment,
		})
		if _, err := s.auditSvc.Record(tx, c.ID, actor, auditAction(d), string(details), now); err != nil {
			return err
		}

		subject, body := decisionMessage(c, actor, d)
		return s.notifySvc.Dispatch(tx, c, actor, tr.Notify, subject, body, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDecision(string(d))
	return c, nil
}

// decideAdHoc 执行临时评审决定: 仅追加评审记录与审计条目
func (s *workflowService) decideAdHoc(c *model.ContractModel, actor workflow.Actor, d workflow.Decision, comment string) (*model.ContractModel, error) {
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		review := &model.ReviewModel{
			ID:           s.idgen.NewID(),
			ContractID:   c.ID,
			ReviewerID:   actor.ID,
			ReviewerName: actor.Name,
			Role:         string(actor.Role),
			Decision:     string(d),
			Comment:      comment,
			IsAdHoc:      true,
			CreatedAt:    now,
		}
		if err := review.Validate(); err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]interface{}{
			"decision": string(d),
			"comment":  comment,
			"ad_hoc":   true,
		})
		_, err := s.auditSvc.Record(tx, c.ID, actor, auditAction(d), string(details), now)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDecision(string(d))
	return c, nil
}

// AddReviewer 将用户加入合同的临时评审人列表
// 重复添加是纯幂等空操作: 不产生审计条目也不发通知
func (s *workflowService) AddReviewer(ctx context.Context, actor workflow.Actor, contractID string, userID string) error {
	unlock := s.locker.Lock(contractID)
	defer unlock()

	c, err := s.load(contractID)
	if err != nil {
		return err
	}

	allowed := actor.ID == c.SubmitterID ||
		actor.Role == workflow.RoleCorporateLegal ||
		actor.Role == workflow.RoleCEO
	if !allowed {
		return workflow.NewAuthorizationError("add_reviewer", "only the submitter, corporate legal or the CEO can add reviewers")
	}
	if workflow.IsTerminal(workflow.Status(c.Status)) {
		return workflow.NewAuthorizationError("add_reviewer", "contract has reached a terminal status")
	}

	user, err := s.dir.Resolve(userID)
	if err != nil {
		return err
	}

	exists, err := s.reviewers.Exists(c.ID, user.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		reviewer := &model.ReviewerModel{
			ID:         s.idgen.NewID(),
			ContractID: c.ID,
			UserID:     user.ID,
			UserName:   user.Name,
			Role:       user.Role,
			AddedBy:    actor.ID,
			AddedAt:    now,
		}
		if err := reviewer.Validate(); err != nil {
			return err
		}
		if err := tx.Create(reviewer).Error; err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]string{
			"user_id":   user.ID,
			"user_name": user.Name,
		})
		if _, err := s.auditSvc.Record(tx, c.ID, actor, model.ActionAddedReviewer, string(details), now); err != nil {
			return err
		}

		subject := fmt.Sprintf("You were added as reviewer: %s", c.Title)
		body := fmt.Sprintf("%s added you as an ad-hoc reviewer on contract %q.", actor.Name, c.Title)
		return s.notifySvc.DispatchTo(tx, c, actor, user.Name, subject, body, now)
	})
}

// Reviews 返回合同的评审历史
func (s *workflowService) Reviews(contractID string) ([]*model.ReviewModel, error) {
	if _, err := s.load(contractID); err != nil {
		return nil, err
	}
	return s.reviews.FindByContractID(contractID)
}

// Reviewers 返回合同的临时评审人列表
func (s *workflowService) Reviewers(contractID string) ([]*model.ReviewerModel, error) {
	if _, err := s.load(contractID); err != nil {
		return nil, err
	}
	return s.reviewers.FindByContractID(contractID)
}

// load 加载合同,不存在时返回 NotFoundError
func (s *workflowService) load(contractID string) (*model.ContractModel, error) {
	c, err := s.contracts.FindByID(contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("contract", contractID)
		}
		return nil, err
	}
	return c, nil
}

// auditAction 决定对应的审计动作
func auditAction(d workflow.Decision) string {
	switch d {
	case workflow.DecisionApproved:
		return model.ActionApproved
	case workflow.DecisionRejected:
		return model.ActionRejected
	default:
		return model.ActionRequestedChanges
	}
}

// decisionMessage 决定对应的通知主题与正文
func decisionMessage(c *model.ContractModel, actor workflow.Actor, d workflow.Decision) (string, string) {
	switch d {
	case workflow.DecisionApproved:
		if c.Status == string(workflow.StatusPendingCEO) {
			return fmt.Sprintf("Contract awaiting CEO approval: %s", c.Title),
				fmt.Sprintf("%s approved contract %q on behalf of corporate legal. CEO sign-off is required.", actor.Name, c.Title)
		}
		return fmt.Sprintf("Contract approved: %s", c.Title),
			fmt.Sprintf("%s gave final approval for contract %q.", actor.Name, c.Title)
	case workflow.DecisionRejected:
		return fmt.Sprintf("Contract rejected: %s", c.Title),
			fmt.Sprintf("%s rejected contract %q.", actor.Name, c.Title)
	default:
		return fmt.Sprintf("Changes requested: %s", c.Title),
			fmt.Sprintf("%s requested changes on contract %q.", actor.Name, c.Title)
	}
}
