package repository

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"gorm.io/gorm"
)

// CommentRepository 评论仓储接口
type CommentRepository interface {
	Save(comment *model.CommentModel) error
	Update(comment *model.CommentModel) error
	FindByID(contractID string, commentID string) (*model.CommentModel, error)
	FindByContractID(contractID string) ([]*model.CommentModel, error)
}

// commentRepository 评论仓储实现
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Save 追加评论
func (r *commentRepository) Save(comment *model.CommentModel) error {
	return r.db.Create(comment).Error
}

// Update 更新评论(仅点赞集合会变化,正文不可修改)
func (r *commentRepository) Update(comment *model.CommentModel) error {
	return r.db.Save(comment).Error
}

// FindByID 在合同范围内查找评论
func (r *commentRepository) FindByID(contractID string, commentID string) (*model.CommentModel, error) {
	var comment model.CommentModel
	if err := r.db.Where("contract_id = ? AND id = ?", contractID, commentID).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByContractID 查找合同的全部评论
func (r *commentRepository) FindByContractID(contractID string) ([]*model.CommentModel, error) {
	var comments []*model.CommentModel
	err := r.db.Where("contract_id = ?", contractID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}
