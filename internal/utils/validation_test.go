package utils_test

import (
	"strings"
	"testing"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/stretchr/testify/assert"
)

// TestValidateID 测试 ID 格式验证
func TestValidateID(t *testing.T) {
	assert.NoError(t, utils.ValidateID("c-001"))
	assert.NoError(t, utils.ValidateID("user_42"))
	assert.NoError(t, utils.ValidateID("ABCdef123"))

	assert.ErrorIs(t, utils.ValidateID(""), utils.ErrEmptyID)
	assert.ErrorIs(t, utils.ValidateID("has space"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateID("semi;colon"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateID(strings.Repeat("a", 65)), utils.ErrIDTooLong)
}

// TestValidatePercent 测试百分比验证
func TestValidatePercent(t *testing.T) {
	assert.NoError(t, utils.ValidatePercent(0))
	assert.NoError(t, utils.ValidatePercent(100))
	assert.NoError(t, utils.ValidatePercent(33.3))

	assert.ErrorIs(t, utils.ValidatePercent(-0.1), utils.ErrPercentOutOfRange)
	assert.ErrorIs(t, utils.ValidatePercent(100.1), utils.ErrPercentOutOfRange)
}

// TestSanitizeString 测试字符串清理
func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", utils.SanitizeString("<b>bold</b>"))
	assert.Equal(t, "line1\nline2", utils.SanitizeString("line1\nline2"))
	assert.Equal(t, "ab", utils.SanitizeString("a\x00b"))
}

// TestIsBlank 测试空白判断
func TestIsBlank(t *testing.T) {
	assert.True(t, utils.IsBlank(""))
	assert.True(t, utils.IsBlank("   \t\n"))
	assert.False(t, utils.IsBlank("x"))
	assert.False(t, utils.IsBlank("  x  "))
}

// TestSequenceGenerator 测试确定性序列生成器
func TestSequenceGenerator(t *testing.T) {
	g := &utils.SequenceGenerator{Prefix: "c"}
	assert.Equal(t, "c-0001", g.NewID())
	assert.Equal(t, "c-0002", g.NewID())
}

// TestUUIDGenerator 测试 UUID 生成器产生唯一值
func TestUUIDGenerator(t *testing.T) {
	g := utils.UUIDGenerator{}
	a := g.NewID()
	b := g.NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
