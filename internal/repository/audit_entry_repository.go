package repository

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"gorm.io/gorm"
)

// AuditEntryRepository 审计条目仓储接口
// 只追加: 不提供更新或删除已有条目的方法
type AuditEntryRepository interface {
	Save(entry *model.AuditEntryModel) error
	FindByContractID(contractID string) ([]*model.AuditEntryModel, error)
	CountByContractID(contractID string) (int64, error)
}

// auditEntryRepository 审计条目仓储实现
type auditEntryRepository struct {
	db *gorm.DB
}

// NewAuditEntryRepository 创建审计条目仓储
func NewAuditEntryRepository(db *gorm.DB) AuditEntryRepository {
	return &auditEntryRepository{db: db}
}

// Save 追加审计条目
func (r *auditEntryRepository) Save(entry *model.AuditEntryModel) error {
	return r.db.Create(entry).Error
}

// FindByContractID 按时间戳升序返回合同的审计轨迹
func (r *auditEntryRepository) FindByContractID(contractID string) ([]*model.AuditEntryModel, error) {
	var entries []*model.AuditEntryModel
	err := r.db.Where("contract_id = ?", contractID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

// CountByContractID 统计合同的审计条目数量
func (r *auditEntryRepository) CountByContractID(contractID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.AuditEntryModel{}).Where("contract_id = ?", contractID).Count(&count).Error
	return count, err
}
