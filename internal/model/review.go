package model

import (
	"errors"
	"time"
)

// ReviewModel 评审记录数据模型
// 一经写入不可修改,更正以新记录形式追加
type ReviewModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	ContractID   string    `gorm:"type:varchar(64);not null;index"`
	ReviewerID   string    `gorm:"type:varchar(64);not null;index"`
	ReviewerName string    `gorm:"type:varchar(128);not null"`
	Role         string    `gorm:"type:varchar(32);not null"`
	Decision     string    `gorm:"type:varchar(32);not null"` // Approved/Rejected/Changes Requested
	Comment      string    `gorm:"type:text;not null"`
	IsAdHoc      bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

// Validate 验证评审记录模型
func (rm *ReviewModel) Validate() error {
	if rm.ID == "" {
		return errors.New("review ID is required")
	}
	if rm.ContractID == "" {
		return errors.New("contract ID is required")
	}
	if rm.ReviewerID == "" {
		return errors.New("reviewer ID is required")
	}
	if rm.Decision == "" {
		return errors.New("review decision is required")
	}
	if rm.Comment == "" {
		return errors.New("review comment is required")
	}
	return nil
}
