package model

import (
	"errors"
	"time"
)

// DocumentModel 附件元数据模型
// 仅保存元数据,文件内容由外部存储负责
type DocumentModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	ContractID string    `gorm:"type:varchar(64);not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Size       int64     `gorm:"not null"`
	UploadedBy string    `gorm:"type:varchar(64);not null"`
	UploadedAt time.Time `gorm:"not null"`
}

// TableName 指定表名
func (DocumentModel) TableName() string {
	return "documents"
}

// Validate 验证附件元数据模型
func (dm *DocumentModel) Validate() error {
	if dm.ID == "" {
		return errors.New("document ID is required")
	}
	if dm.ContractID == "" {
		return errors.New("contract ID is required")
	}
	if dm.Name == "" {
		return errors.New("document name is required")
	}
	if dm.Size < 0 {
		return errors.New("document size must not be negative")
	}
	return nil
}
