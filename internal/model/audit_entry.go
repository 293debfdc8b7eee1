package model

import (
	"errors"
	"time"
)

// 审计动作
const (
	ActionCreatedContract   = "Created Contract"
	ActionUpdatedContract   = "Updated Contract"
	ActionSubmittedContract = "Submitted Contract"
	ActionApproved          = "Approved"
	ActionRejected          = "Rejected"
	ActionRequestedChanges  = "Requested Changes"
	ActionAddedReviewer     = "Added Reviewer"
	ActionAddedComment      = "Added Comment"
	ActionUploadedDocument  = "Uploaded Document"
	ActionSentNotification  = "Sent Notification"
)

// AuditEntryModel 审计条目数据模型
// 只追加: 系统中不存在修改或删除已有条目的路径。
// 同一毫秒内由状态变更触发的通知条目,时间戳整体后移 1ms 以保持因果顺序
type AuditEntryModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	ContractID string    `gorm:"type:varchar(64);not null;index"`
	UserID     string    `gorm:"type:varchar(64);not null;index"`
	UserName   string    `gorm:"type:varchar(128);not null"`
	Action     string    `gorm:"type:varchar(64);not null;index"`
	Details    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// Validate 验证审计条目模型
func (am *AuditEntryModel) Validate() error {
	if am.ID == "" {
		return errors.New("audit entry ID is required")
	}
	if am.ContractID == "" {
		return errors.New("contract ID is required")
	}
	if am.UserID == "" {
		return errors.New("user ID is required")
	}
	if am.Action == "" {
		return errors.New("action is required")
	}
	return nil
}
