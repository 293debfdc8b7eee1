package service

import (
	"encoding/json"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"gorm.io/gorm"
)

// AuditService 审计轨迹服务
// 每个状态变更操作和每次通知派发各产生恰好一条条目;条目一经写入不可变
type AuditService interface {
	Record(db *gorm.DB, contractID string, actor workflow.Actor, action string, details string, at time.Time) (*model.AuditEntryModel, error)
	RecordNotification(db *gorm.DB, contractID string, actor workflow.Actor, recipient string, subject string, after time.Time) (*model.AuditEntryModel, error)
	Trail(contractID string) ([]*model.AuditEntryModel, error)
}

// auditService 审计轨迹服务实现
type auditService struct {
	entries repository.AuditEntryRepository
	idgen   utils.IDGenerator
}

// NewAuditService 创建审计轨迹服务
func NewAuditService(entries repository.AuditEntryRepository, idgen utils.IDGenerator) AuditService {
	return &auditService{entries: entries, idgen: idgen}
}

// Record 追加一条审计条目
// db 允许传入事务句柄,使条目与触发它的变更同事务提交
func (s *auditService) Record(db *gorm.DB, contractID string, actor workflow.Actor, action string, details string, at time.Time) (*model.AuditEntryModel, error) {
	entry := &model.AuditEntryModel{
		ID:         s.idgen.NewID(),
		ContractID: contractID,
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     action,
		Details:    details,
		CreatedAt:  at,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordNotification 追加通知派发条目
// 时间戳取触发条目之后 1ms,确保同一毫秒内按时间排序仍能还原因果顺序。
// 无论投递是否成功都记录: 审计的是派发尝试
func (s *auditService) RecordNotification(db *gorm.DB, contractID string, actor workflow.Actor, recipient string, subject string, after time.Time) (*model.AuditEntryModel, error) {
	details, err := json.Marshal(map[string]string{
		"recipient": recipient,
		"subject":   subject,
	})
	if err != nil {
		return nil, err
	}
	return s.Record(db, contractID, actor, model.ActionSentNotification, string(details), after.Add(time.Millisecond))
}

// Trail 按时间戳升序返回合同的审计轨迹
func (s *auditService) Trail(contractID string) ([]*model.AuditEntryModel, error) {
	return s.entries.FindByContractID(contractID)
}
