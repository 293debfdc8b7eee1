package model

import (
	"errors"
)

// UserModel 用户目录数据模型
// 本服务信任调用方提供的当前用户,此表仅用于名称/角色解析与通知寻址
type UserModel struct {
	ID    string `gorm:"primaryKey;type:varchar(64)"`
	Name  string `gorm:"type:varchar(128);not null"`
	Role  string `gorm:"type:varchar(32);not null;index"`
	Email string `gorm:"type:varchar(255)"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// Validate 验证用户模型
func (um *UserModel) Validate() error {
	if um.ID == "" {
		return errors.New("user ID is required")
	}
	if um.Name == "" {
		return errors.New("user name is required")
	}
	if um.Role == "" {
		return errors.New("user role is required")
	}
	return nil
}
