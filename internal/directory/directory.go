// Package directory 提供显式的用户目录协作者
// 工作流引擎需要解析名称(如通知接收人)时注入使用,不做全局单例
package directory

import (
	"errors"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"gorm.io/gorm"
)

// User 目录中的用户
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// UserDirectory 用户目录接口
type UserDirectory interface {
	Resolve(id string) (*User, error)
	FindByRole(role string) ([]*User, error)
	List() ([]*User, error)
}

// dbDirectory 基于数据库的用户目录
type dbDirectory struct {
	users repository.UserRepository
}

// NewDirectory 创建用户目录
func NewDirectory(users repository.UserRepository) UserDirectory {
	return &dbDirectory{users: users}
}

// Resolve 根据 ID 解析用户
func (d *dbDirectory) Resolve(id string) (*User, error) {
	u, err := d.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("user", id)
		}
		return nil, err
	}
	return fromModel(u), nil
}

// FindByRole 根据角色查找用户
func (d *dbDirectory) FindByRole(role string) ([]*User, error) {
	models, err := d.users.FindByRole(role)
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(models))
	for _, m := range models {
		users = append(users, fromModel(m))
	}
	return users, nil
}

// List 返回目录中全部用户
func (d *dbDirectory) List() ([]*User, error) {
	models, err := d.users.FindAll()
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(models))
	for _, m := range models {
		users = append(users, fromModel(m))
	}
	return users, nil
}

func fromModel(m *model.UserModel) *User {
	return &User{ID: m.ID, Name: m.Name, Role: m.Role, Email: m.Email}
}
