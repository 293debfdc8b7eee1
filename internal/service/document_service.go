package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"gorm.io/gorm"
)

// maxDocumentSize 单个附件的大小上限 (50 MB)
const maxDocumentSize = 50 << 20

// DocumentService 附件元数据服务接口
// 只登记元数据,文件本体由外部存储保管
type DocumentService interface {
	Upload(ctx context.Context, actor workflow.Actor, contractID string, name string, size int64) (*model.DocumentModel, error)
	List(contractID string) ([]*model.DocumentModel, error)
}

// documentService 附件元数据服务实现
type documentService struct {
	db        *gorm.DB
	contracts repository.ContractRepository
	documents repository.DocumentRepository
	auditSvc  AuditService
	idgen     utils.IDGenerator
}

// NewDocumentService 创建附件元数据服务
func NewDocumentService(db *gorm.DB, contracts repository.ContractRepository, documents repository.DocumentRepository, auditSvc AuditService, idgen utils.IDGenerator) DocumentService {
	return &documentService{
		db:        db,
		contracts: contracts,
		documents: documents,
		auditSvc:  auditSvc,
		idgen:     idgen,
	}
}

// Upload 登记一条附件元数据
func (s *documentService) Upload(ctx context.Context, actor workflow.Actor, contractID string, name string, size int64) (*model.DocumentModel, error) {
	c, err := s.contracts.FindByID(contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("contract", contractID)
		}
		return nil, err
	}

	if utils.IsBlank(name) {
		return nil, workflow.NewValidationError("name", "document name is required")
	}
	if size < 0 {
		return nil, workflow.NewValidationError("size", "document size must not be negative")
	}
	if size > maxDocumentSize {
		return nil, workflow.NewValidationError("size", fmt.Sprintf("document exceeds the %d byte limit", maxDocumentSize))
	}

	now := time.Now()
	doc := &model.DocumentModel{
		ID:         s.idgen.NewID(),
		ContractID: c.ID,
		Name:       name,
		Size:       size,
		UploadedBy: actor.ID,
		UploadedAt: now,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		details, _ := json.Marshal(map[string]interface{}{
			"name": doc.Name,
			"size": doc.Size,
		})
		_, err := s.auditSvc.Record(tx, c.ID, actor, model.ActionUploadedDocument, string(details), now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// List 返回合同的附件元数据,按上传时间升序
func (s *documentService) List(contractID string) ([]*model.DocumentModel, error) {
	if _, err := s.contracts.FindByID(contractID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("contract", contractID)
		}
		return nil, err
	}
	return s.documents.FindByContractID(contractID)
}
