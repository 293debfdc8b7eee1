package repository

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"gorm.io/gorm"
)

// ReviewRepository 评审记录仓储接口
// 评审记录只追加,接口不提供更新或删除
type ReviewRepository interface {
	Save(review *model.ReviewModel) error
	FindByContractID(contractID string) ([]*model.ReviewModel, error)
	HasReviewed(contractID string, reviewerID string) (bool, error)
}

// reviewRepository 评审记录仓储实现
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评审记录仓储
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Save 追加评审记录
func (r *reviewRepository) Save(review *model.ReviewModel) error {
	return r.db.Create(review).Error
}

// FindByContractID 查找合同的全部评审记录
func (r *reviewRepository) FindByContractID(contractID string) ([]*model.ReviewModel, error) {
	var reviews []*model.ReviewModel
	err := r.db.Where("contract_id = ?", contractID).Order("created_at ASC").Find(&reviews).Error
	return reviews, err
}

// HasReviewed 判断用户是否已对该合同留有评审记录
func (r *reviewRepository) HasReviewed(contractID string, reviewerID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ReviewModel{}).
		Where("contract_id = ? AND reviewer_id = ?", contractID, reviewerID).
		Count(&count).Error
	return count > 0, err
}
