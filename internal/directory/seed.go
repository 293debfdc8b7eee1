package directory

import (
	"fmt"
	"os"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// seedFile 用户目录种子文件结构
type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Email string `yaml:"email"`
}

// LoadSeedFile 读取用户目录种子文件
func LoadSeedFile(path string) ([]*model.UserModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	users := make([]*model.UserModel, 0, len(sf.Users))
	for _, su := range sf.Users {
		u := &model.UserModel{ID: su.ID, Name: su.Name, Role: su.Role, Email: su.Email}
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("invalid seed user %q: %w", su.ID, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// Seed 将种子用户写入用户表,已存在的按 ID 覆盖
func Seed(db *gorm.DB, users []*model.UserModel) error {
	for _, u := range users {
		if err := db.Save(u).Error; err != nil {
			return fmt.Errorf("failed to seed user %q: %w", u.ID, err)
		}
	}
	return nil
}
