package model

import (
	"errors"
	"time"
)

// ReviewerModel 临时评审人数据模型
// 每个合同下同一用户至多出现一次
type ReviewerModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	ContractID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_reviewers_contract_user"`
	UserID     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_reviewers_contract_user"`
	UserName   string    `gorm:"type:varchar(128);not null"`
	Role       string    `gorm:"type:varchar(32)"`
	AddedBy    string    `gorm:"type:varchar(64);not null"`
	AddedAt    time.Time `gorm:"not null"`
}

// TableName 指定表名
func (ReviewerModel) TableName() string {
	return "ad_hoc_reviewers"
}

// Validate 验证临时评审人模型
func (rm *ReviewerModel) Validate() error {
	if rm.ID == "" {
		return errors.New("reviewer ID is required")
	}
	if rm.ContractID == "" {
		return errors.New("contract ID is required")
	}
	if rm.UserID == "" {
		return errors.New("user ID is required")
	}
	if rm.AddedBy == "" {
		return errors.New("added by is required")
	}
	return nil
}
