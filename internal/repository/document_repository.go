package repository

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"gorm.io/gorm"
)

// DocumentRepository 附件元数据仓储接口
type DocumentRepository interface {
	Save(doc *model.DocumentModel) error
	FindByContractID(contractID string) ([]*model.DocumentModel, error)
}

// documentRepository 附件元数据仓储实现
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository 创建附件元数据仓储
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Save 保存附件元数据
func (r *documentRepository) Save(doc *model.DocumentModel) error {
	return r.db.Create(doc).Error
}

// FindByContractID 查找合同的全部附件元数据
func (r *documentRepository) FindByContractID(contractID string) ([]*model.DocumentModel, error) {
	var docs []*model.DocumentModel
	err := r.db.Where("contract_id = ?", contractID).Order("uploaded_at ASC").Find(&docs).Error
	return docs, err
}
