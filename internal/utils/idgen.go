package utils

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator 唯一 ID 生成器
// 以接口注入,测试中可替换为确定性实现
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator 基于 UUID v4 的默认实现
type UUIDGenerator struct{}

// NewID 生成新的 UUID
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// SequenceGenerator 确定性序列生成器(测试用)
type SequenceGenerator struct {
	Prefix string

	mu sync.Mutex
	n  int
}

// NewID 生成带前缀的递增 ID
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.Prefix, g.n)
}
