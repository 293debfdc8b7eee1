package model

import (
	"encoding/json"
	"errors"
	"time"
)

// CommentModel 评论数据模型
// 只追加;点赞为按用户幂等的开关,不计入审计
type CommentModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	ContractID string    `gorm:"type:varchar(64);not null;index"`
	UserID     string    `gorm:"type:varchar(64);not null"`
	UserName   string    `gorm:"type:varchar(128);not null"`
	Role       string    `gorm:"type:varchar(32)"`
	Text       string    `gorm:"type:text;not null"`
	Likes      []byte    `gorm:"type:jsonb"` // 点赞用户 ID 集合
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (CommentModel) TableName() string {
	return "comments"
}

// Validate 验证评论模型
func (cm *CommentModel) Validate() error {
	if cm.ID == "" {
		return errors.New("comment ID is required")
	}
	if cm.ContractID == "" {
		return errors.New("contract ID is required")
	}
	if cm.UserID == "" {
		return errors.New("user ID is required")
	}
	if cm.Text == "" {
		return errors.New("comment text is required")
	}
	return nil
}

// GetLikes 反序列化点赞用户集合
func (cm *CommentModel) GetLikes() ([]string, error) {
	if len(cm.Likes) == 0 {
		return nil, nil
	}
	var likes []string
	if err := json.Unmarshal(cm.Likes, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// SetLikes 序列化并写入点赞用户集合
func (cm *CommentModel) SetLikes(likes []string) error {
	data, err := json.Marshal(likes)
	if err != nil {
		return err
	}
	cm.Likes = data
	return nil
}

// ToggleLike 切换用户点赞状态
// 返回切换后该用户是否点赞
func (cm *CommentModel) ToggleLike(userID string) (bool, error) {
	likes, err := cm.GetLikes()
	if err != nil {
		return false, err
	}
	for i, id := range likes {
		if id == userID {
			likes = append(likes[:i], likes[i+1:]...)
			return false, cm.SetLikes(likes)
		}
	}
	likes = append(likes, userID)
	return true, cm.SetLikes(likes)
}
