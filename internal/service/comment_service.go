package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"gorm.io/gorm"
)

// CommentService 评论服务接口
// 评论与审批决定互不影响: 发表评论不改变合同状态
type CommentService interface {
	Add(ctx context.Context, actor workflow.Actor, contractID string, text string) (*model.CommentModel, error)
	ToggleLike(ctx context.Context, actor workflow.Actor, contractID string, commentID string) (bool, error)
	MarkRead(ctx context.Context, actor workflow.Actor, contractID string) error
	List(contractID string) ([]*model.CommentModel, error)
}

// commentService 评论服务实现
type commentService struct {
	db        *gorm.DB
	contracts repository.ContractRepository
	comments  repository.CommentRepository
	auditSvc  AuditService
	locker    *ContractLocker
	idgen     utils.IDGenerator
}

// NewCommentService 创建评论服务
func NewCommentService(db *gorm.DB, contracts repository.ContractRepository, comments repository.CommentRepository, auditSvc AuditService, locker *ContractLocker, idgen utils.IDGenerator) CommentService {
	return &commentService{
		db:        db,
		contracts: contracts,
		comments:  comments,
		auditSvc:  auditSvc,
		locker:    locker,
		idgen:     idgen,
	}
}

// Add 发表评论并置未读标记
func (s *commentService) Add(ctx context.Context, actor workflow.Actor, contractID string, text string) (*model.CommentModel, error) {
	unlock := s.locker.Lock(contractID)
	defer unlock()

	c, err := s.loadContract(contractID)
	if err != nil {
		return nil, err
	}
	if utils.IsBlank(text) {
		return nil, workflow.NewValidationError("text", "comment text is required")
	}

	now := time.Now()
	comment := &model.CommentModel{
		ID:         s.idgen.NewID(),
		ContractID: c.ID,
		UserID:     actor.ID,
		UserName:   actor.Name,
		Role:       string(actor.Role),
		Text:       text,
		CreatedAt:  now,
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	c.HasUnreadComments = true
	c.UpdatedAt = now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		details, _ := json.Marshal(map[string]string{"comment_id": comment.ID})
		_, err := s.auditSvc.Record(tx, c.ID, actor, model.ActionAddedComment, string(details), now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// ToggleLike 切换当前用户对评论的点赞
// 评论不存在时静默返回;点赞切换不产生审计条目
func (s *commentService) ToggleLike(ctx context.Context, actor workflow.Actor, contractID string, commentID string) (bool, error) {
	unlock := s.locker.Lock(contractID)
	defer unlock()

	if _, err := s.loadContract(contractID); err != nil {
		return false, err
	}

	comment, err := s.comments.FindByID(contractID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	liked, err := comment.ToggleLike(actor.ID)
	if err != nil {
		return false, err
	}
	if err := s.comments.Update(comment); err != nil {
		return false, err
	}
	return liked, nil
}

// MarkRead 清除合同的未读评论标记
func (s *commentService) MarkRead(ctx context.Context, actor workflow.Actor, contractID string) error {
	unlock := s.locker.Lock(contractID)
	defer unlock()

	c, err := s.loadContract(contractID)
	if err != nil {
		return err
	}
	if !c.HasUnreadComments {
		return nil
	}

	c.HasUnreadComments = false
	c.UpdatedAt = time.Now()
	return s.contracts.Save(c)
}

// List 返回合同的评论,按时间升序
func (s *commentService) List(contractID string) ([]*model.CommentModel, error) {
	if _, err := s.loadContract(contractID); err != nil {
		return nil, err
	}
	return s.comments.FindByContractID(contractID)
}

func (s *commentService) loadContract(contractID string) (*model.ContractModel, error) {
	c, err := s.contracts.FindByID(contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("contract", contractID)
		}
		return nil, err
	}
	return c, nil
}
