package repository

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"gorm.io/gorm"
)

// ReviewerRepository 临时评审人仓储接口
type ReviewerRepository interface {
	Save(reviewer *model.ReviewerModel) error
	FindByContractID(contractID string) ([]*model.ReviewerModel, error)
	Exists(contractID string, userID string) (bool, error)
}

// reviewerRepository 临时评审人仓储实现
type reviewerRepository struct {
	db *gorm.DB
}

// NewReviewerRepository 创建临时评审人仓储
func NewReviewerRepository(db *gorm.DB) ReviewerRepository {
	return &reviewerRepository{db: db}
}

// Save 保存临时评审人
func (r *reviewerRepository) Save(reviewer *model.ReviewerModel) error {
	return r.db.Create(reviewer).Error
}

// FindByContractID 查找合同的全部临时评审人
func (r *reviewerRepository) FindByContractID(contractID string) ([]*model.ReviewerModel, error) {
	var reviewers []*model.ReviewerModel
	err := r.db.Where("contract_id = ?", contractID).Order("added_at ASC").Find(&reviewers).Error
	return reviewers, err
}

// Exists 判断用户是否已在评审人列表中
func (r *reviewerRepository) Exists(contractID string, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ReviewerModel{}).
		Where("contract_id = ? AND user_id = ?", contractID, userID).
		Count(&count).Error
	return count > 0, err
}
